package domain

import "time"

// DiseaseDetection is the result of analyzing a bird image.
type DiseaseDetection struct {
	ID                 string              `json:"id"`
	BirdID             string              `json:"bird_id,omitempty"`
	ImageURL           string              `json:"image_url"`
	DetectedDisease    string              `json:"detected_disease"`
	Confidence         float64             `json:"confidence"`
	Symptoms           []string            `json:"symptoms,omitempty"`
	Recommendations    []string            `json:"recommendations,omitempty"`
	Severity           string              `json:"severity"`
	DetectionDate      time.Time           `json:"detection_date"`
	VeterinarianReview *VeterinarianReview `json:"veterinarian_review,omitempty"`
}

// VeterinarianReview is a vet's follow-up on an automated detection.
type VeterinarianReview struct {
	VeterinarianID   string    `json:"veterinarian_id"`
	Diagnosis        string    `json:"diagnosis"`
	Treatment        string    `json:"treatment"`
	FollowUpRequired bool      `json:"follow_up_required"`
	ReviewDate       time.Time `json:"review_date"`
	Notes            string    `json:"notes,omitempty"`
}
