package paymentControllers

import (
	"log"
	courseControllers "lot/controllers/course"
	eventControllers "lot/controllers/event"
	"lot/database"
	"lot/middleware"
	"lot/models"
	"lot/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePayment initializes a checkout: creates the gateway order and
// stores a pending Payment keyed by the order id
func CreatePayment(rz *utils.RazorpayClient) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		reqData, ok := c.Locals("validatedPaymentCreate").(*struct {
			CourseID      *uint   `json:"course_id"`
			EventID       *uint   `json:"event_id"`
			Amount        float64 `json:"amount" validate:"omitempty,min=0"`
			PaymentMethod string  `json:"payment_method" validate:"required"`
		})
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		db := database.Database.Db

		var amount float64
		switch {
		case reqData.CourseID != nil:
			var course models.Course
			if err := db.Where("id = ? AND is_deleted = ?", *reqData.CourseID, false).First(&course).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
			}
			amount = course.Price
		case reqData.EventID != nil:
			var event models.Event
			if err := db.Where("id = ?", *reqData.EventID).First(&event).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
			}
			amount = reqData.Amount
		}

		order, err := rz.CreateOrder(int64(amount*100), uuid.NewString())
		if err != nil {
			log.Printf("Payment initialization failed: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Payment initialization failed!", nil)
		}

		payment := models.Payment{
			UserID:        userID,
			CourseID:      reqData.CourseID,
			EventID:       reqData.EventID,
			Amount:        amount,
			PaymentMethod: reqData.PaymentMethod,
			TransactionID: order.ID,
			Status:        models.PaymentPending,
		}
		if err := db.Create(&payment).Error; err != nil {
			log.Printf("Error saving payment: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store payment record!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment initialized successfully!", fiber.Map{
			"order_id":       order.ID,
			"amount":         amount,
			"currency":       "INR",
			"payment_method": payment.PaymentMethod,
			"razorpay_key":   rz.KeyID(),
		})
	}
}

// VerifyPayment checks the gateway signature and completes the payment. On
// success exactly one idempotent side effect runs: course payments create
// the enrollment, event payments confirm the registration. Duplicate
// verification calls are tolerated silently.
func VerifyPayment(rz *utils.RazorpayClient) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		reqData, ok := c.Locals("validatedPaymentVerify").(*struct {
			RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
			RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
			RazorpaySignature string `json:"razorpay_signature" validate:"required"`
		})
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		db := database.Database.Db

		var payment models.Payment
		if err := db.Where("transaction_id = ?", reqData.RazorpayOrderID).First(&payment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment record not found!", nil)
		}

		if payment.UserID != userID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Payment belongs to another user!", nil)
		}

		if err := rz.VerifyPaymentSignature(reqData.RazorpayOrderID, reqData.RazorpayPaymentID, reqData.RazorpaySignature); err != nil {
			payment.Status = models.PaymentFailed
			db.Save(&payment)
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment verification failed!", nil)
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			payment.Status = models.PaymentCompleted
			if err := tx.Save(&payment).Error; err != nil {
				return err
			}

			switch {
			case payment.CourseID != nil:
				// idempotent: a repeated completion finds the enrollment and
				// does nothing
				_, _, err := courseControllers.CreateEnrollment(tx, payment.UserID, *payment.CourseID)
				return err
			case payment.EventID != nil:
				_, _, err := eventControllers.RegisterForEvent(tx, payment.UserID, *payment.EventID)
				return err
			}
			return nil
		})
		if err != nil {
			log.Printf("Error completing payment %s: %v", payment.TransactionID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete payment!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment verified successfully!", fiber.Map{
			"payment_id": payment.ID,
			"status":     payment.Status,
			"course_id":  payment.CourseID,
			"event_id":   payment.EventID,
		})
	}
}

// GetTransactions lists the caller's payments
func GetTransactions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var payments []models.Payment
	if err := database.Database.Db.Where("user_id = ?", userID).Order("created_at desc").Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transactions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions fetched successfully!", fiber.Map{
		"data":  payments,
		"total": len(payments),
	})
}
