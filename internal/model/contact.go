package model

// ContactRequest is the body of POST /api/contact.
type ContactRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	Email        string `json:"email" binding:"required,max=320"`
	Message      string `json:"message" binding:"required,max=5000"`
	CaptchaToken string `json:"captchaToken" binding:"required"`
}
