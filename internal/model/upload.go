package model

// ImageReport describes how one uploaded image was compressed
type ImageReport struct {
	SizeBytes      int  `json:"sizeBytes"`
	QualityUsed    int  `json:"qualityUsed"`
	Attempts       int  `json:"attempts"`
	BudgetExceeded bool `json:"budgetExceeded"`
}

// ImageUploadResponse is returned after a profile image update
type ImageUploadResponse struct {
	Message string      `json:"message"`
	Image   string      `json:"image"`
	Report  ImageReport `json:"report"`
}
