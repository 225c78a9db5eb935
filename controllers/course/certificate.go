package courseControllers

import (
	"errors"
	"log"
	"lot/database"
	"lot/middleware"
	"lot/models"
	"lot/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GenerateCertificate issues a certificate for a completed course. Issuance
// is idempotent: a second call returns the existing certificate without a
// duplicate badge or notification.
func GenerateCertificate(wa *utils.WhatsAppClient) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		courseID := c.Locals("courseID").(uint)
		db := database.Database.Db

		var enrollment models.Enrollment
		if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		}

		if !enrollment.Completed {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course must be completed to generate certificate!", nil)
		}

		var existing models.Certificate
		if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already exists", fiber.Map{
				"certificate_id":     existing.ID,
				"certificate_url":    existing.CertificateURL,
				"certificate_number": existing.CertificateNumber,
			})
		}

		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		var course models.Course
		if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}

		certificate := models.Certificate{
			UserID:            userID,
			CourseID:          courseID,
			CertificateNumber: utils.GenerateCertificateNumber(),
			IssuedAt:          time.Now(),
		}
		certificate.CertificateURL = utils.CertificateURL(certificate.CertificateNumber)

		var badgeAwarded bool
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&certificate).Error; err != nil {
				if !errors.Is(err, gorm.ErrDuplicatedKey) {
					return err
				}
				// Either a concurrent issue for the same pair won, or the
				// random number collided. Re-check the pair, then retry the
				// number once.
				var racing models.Certificate
				if err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&racing).Error; err == nil {
					certificate = racing
					return nil
				}
				certificate.CertificateNumber = utils.GenerateCertificateNumber()
				certificate.CertificateURL = utils.CertificateURL(certificate.CertificateNumber)
				if err := tx.Create(&certificate).Error; err != nil {
					return err
				}
			}

			// First certificate ever earns the one-time badge
			var certCount int64
			if err := tx.Model(&models.Certificate{}).Where("user_id = ?", userID).Count(&certCount).Error; err != nil {
				return err
			}
			if certCount == 1 {
				badge := models.UserBadge{
					UserID:           userID,
					BadgeName:        "First Course Complete",
					BadgeDescription: "Completed your first course",
					BadgeIcon:        "trophy",
				}
				if err := tx.Create(&badge).Error; err != nil {
					return err
				}
				badgeAwarded = true
			}
			return nil
		})
		if err != nil {
			log.Printf("Error issuing certificate: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate!", nil)
		}

		// Notification is best-effort and never fails the issuance
		go wa.SendCertificateMessage(user.Phone, user.Name, course.Title, certificate.CertificateURL)

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate generated successfully!", fiber.Map{
			"certificate_id":     certificate.ID,
			"certificate_url":    certificate.CertificateURL,
			"certificate_number": certificate.CertificateNumber,
			"badge_awarded":      badgeAwarded,
		})
	}
}

// GetMyCertificates lists the caller's certificates with course titles
func GetMyCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []models.Certificate
	if err := database.Database.Db.Where("user_id = ?", userID).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	type CertificateWithCourse struct {
		models.Certificate
		CourseTitle string `json:"course_title"`
		CourseImage string `json:"course_image"`
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course models.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{
			Certificate: cert,
			CourseTitle: course.Title,
			CourseImage: course.Image,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}

// VerifyCertificate is the public, unauthenticated certificate lookup
func VerifyCertificate(c *fiber.Ctx) error {
	certificateNumber := c.Params("number")
	if certificateNumber == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate number is required!", nil)
	}

	db := database.Database.Db

	var certificate models.Certificate
	if err := db.Where("certificate_number = ?", certificateNumber).First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var user models.User
	db.Where("id = ?", certificate.UserID).First(&user)
	var course models.Course
	db.Where("id = ?", certificate.CourseID).First(&course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate is valid!", fiber.Map{
		"valid":              true,
		"certificate_number": certificate.CertificateNumber,
		"user_name":          user.Name,
		"course_title":       course.Title,
		"issued_at":          certificate.IssuedAt,
	})
}
