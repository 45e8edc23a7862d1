// Package scorer assigns a deterministic lead quality score and grade.
package scorer

import "leadharvest/models"

// Point values per signal. Signals are independent and additive.
const (
	pointsEmail       = 30
	pointsPhone       = 25
	pointsProperties  = 20
	pointsSocial      = 15
	pointsContactForm = 10
)

// Score computes the quality score for a record and attaches the result to
// it. Pure and deterministic; safe to call repeatedly.
func Score(rec *models.LeadRecord) models.ScoreResult {
	total := 0
	if rec.Contact.Email != "" {
		total += pointsEmail
	}
	if rec.Contact.Phone != "" {
		total += pointsPhone
	}
	if rec.PropertyCount > 0 {
		total += pointsProperties
	}
	if rec.Social.Any() {
		total += pointsSocial
	}
	if rec.HasContactForm {
		total += pointsContactForm
	}

	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	result := models.ScoreResult{Score: total, Grade: GradeFor(total)}
	rec.Score = &result
	return result
}

// GradeFor maps a score in [0,100] to its grade. Thresholds are ascending
// and non-overlapping, so every score maps to exactly one grade.
func GradeFor(score int) models.Grade {
	switch {
	case score >= 80:
		return models.GradeAPlus
	case score >= 70:
		return models.GradeA
	case score >= 60:
		return models.GradeBPlus
	case score >= 50:
		return models.GradeB
	case score >= 40:
		return models.GradeC
	default:
		return models.GradeD
	}
}
