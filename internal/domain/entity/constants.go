package entity

// Oversight status constants for Proposal
const (
	StatusSubmitted    = "SUBMITTED"
	StatusAutoApproved = "AUTO_APPROVED"
	StatusAutoRejected = "AUTO_REJECTED"
	StatusInReview     = "IN_REVIEW"
	StatusApproved     = "APPROVED"
	StatusRejected     = "REJECTED"
	StatusCompleted    = "COMPLETED"
)

// Data classification constants
const (
	ClassificationPublic       = "public"
	ClassificationInternal     = "internal"
	ClassificationConfidential = "confidential"
	ClassificationRestricted   = "restricted"
)

// Escalation trigger keys recognized by the default configuration
const (
	TriggerRestrictedData        = "restricted_data"
	TriggerRegulatoryImpact      = "regulatory_impact"
	TriggerCustomerData          = "customer_data"
	TriggerExternalModelTraining = "external_model_training"
	TriggerNovelVendor           = "novel_vendor"
)
