package paymentValidator

import (
	"lot/middleware"
	"lot/validators"

	"github.com/gofiber/fiber/v2"
)

// CreatePayment validates the order creation payload. Exactly one of
// course_id and event_id must be set.
func CreatePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID      *uint   `json:"course_id"`
			EventID       *uint   `json:"event_id"`
			Amount        float64 `json:"amount" validate:"omitempty,min=0"`
			PaymentMethod string  `json:"payment_method" validate:"required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validators.Check(reqData)
		if errors == nil {
			errors = map[string]string{}
		}

		if reqData.CourseID == nil && reqData.EventID == nil {
			errors["target"] = "Either course_id or event_id is required!"
		}
		if reqData.CourseID != nil && reqData.EventID != nil {
			errors["target"] = "Provide only one of course_id or event_id!"
		}
		if reqData.CourseID != nil && *reqData.CourseID == 0 {
			errors["course_id"] = "Invalid Course ID!"
		}
		if reqData.EventID != nil && *reqData.EventID == 0 {
			errors["event_id"] = "Invalid Event ID!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPaymentCreate", reqData)
		return c.Next()
	}
}

// VerifyPayment validates the gateway callback payload
func VerifyPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
			RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
			RazorpaySignature string `json:"razorpay_signature" validate:"required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPaymentVerify", reqData)
		return c.Next()
	}
}
