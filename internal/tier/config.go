package tier

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/calebryder/ai-governance/internal/domain/entity"
)

func f(v float64) *float64 { return &v }

// DefaultTiers is the shipped four-tier ladder, ascending by cost range.
// Tier IDs and brackets match the governance policy published to teams.
func DefaultTiers() []entity.GovernanceTier {
	return []entity.GovernanceTier{
		{
			ID:                         "tier_1",
			Name:                       "Experiment",
			Sequence:                   1,
			CostMin:                    0,
			CostMax:                    f(1000),
			MaxRiskScore:               2,
			AllowedDataClassifications: []string{entity.ClassificationPublic, entity.ClassificationInternal},
			ApprovalPathway:            entity.PathwayAuto,
			RequiresROIProjection:      false,
			RequiresRiskAssessment:     false,
			RequiresToolApproval:       false,
			RequiresPostReview:         false,
		},
		{
			ID:                         "tier_2",
			Name:                       "Team Adoption",
			Sequence:                   2,
			CostMin:                    1001,
			CostMax:                    f(5000),
			MaxRiskScore:               3,
			AllowedDataClassifications: []string{entity.ClassificationPublic, entity.ClassificationInternal, entity.ClassificationConfidential},
			ApprovalPathway:            entity.PathwayFastTrack,
			RequiresROIProjection:      true,
			RequiresRiskAssessment:     false,
			RequiresToolApproval:       true,
			RequiresPostReview:         true,
			PostReviewSchedule:         []string{"90_day"},
		},
		{
			ID:                         "tier_3",
			Name:                       "Department Rollout",
			Sequence:                   3,
			CostMin:                    5001,
			CostMax:                    f(25000),
			MaxRiskScore:               4,
			AllowedDataClassifications: []string{entity.ClassificationPublic, entity.ClassificationInternal, entity.ClassificationConfidential},
			ApprovalPathway:            entity.PathwayFullOversight,
			RequiresROIProjection:      true,
			RequiresRiskAssessment:     true,
			RequiresToolApproval:       true,
			RequiresPostReview:         true,
			PostReviewSchedule:         []string{"90_day", "180_day"},
		},
		{
			ID:           "tier_4",
			Name:         "Strategic Investment",
			Sequence:     4,
			CostMin:      25001,
			CostMax:      nil,
			MaxRiskScore: 5,
			AllowedDataClassifications: []string{
				entity.ClassificationPublic, entity.ClassificationInternal,
				entity.ClassificationConfidential, entity.ClassificationRestricted,
			},
			ApprovalPathway:        entity.PathwayPartner,
			RequiresROIProjection:  true,
			RequiresRiskAssessment: true,
			RequiresToolApproval:   true,
			RequiresPostReview:     true,
			PostReviewSchedule:     []string{"90_day", "180_day", "365_day"},
		},
	}
}

// DefaultTriggers maps escalation trigger keys to the pathway they force.
func DefaultTriggers() []entity.EscalationTrigger {
	return []entity.EscalationTrigger{
		{Trigger: entity.TriggerRestrictedData, EscalateTo: entity.PathwayPartner, Label: "Restricted data involved"},
		{Trigger: entity.TriggerRegulatoryImpact, EscalateTo: entity.PathwayPartner, Label: "Regulatory impact"},
		{Trigger: entity.TriggerCustomerData, EscalateTo: entity.PathwayFullOversight, Label: "Customer data processed"},
		{Trigger: entity.TriggerExternalModelTraining, EscalateTo: entity.PathwayFullOversight, Label: "Data used for external model training"},
		{Trigger: entity.TriggerNovelVendor, EscalateTo: entity.PathwayFullOversight, Label: "Unvetted vendor"},
	}
}

// Config bundles the tier ladder and the escalation trigger map.
type Config struct {
	Tiers    []entity.GovernanceTier    `json:"tiers"`
	Triggers []entity.EscalationTrigger `json:"escalation_triggers"`
}

// DefaultConfig returns the shipped configuration.
func DefaultConfig() Config {
	return Config{Tiers: DefaultTiers(), Triggers: DefaultTriggers()}
}

// LoadConfig reads tier configuration from a JSON file. An empty path
// returns the defaults; a present but invalid file is an error rather
// than a silent fallback, so a bad deploy cannot loosen the ladder.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read tier config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse tier config: %w", err)
	}

	if len(cfg.Tiers) == 0 {
		return Config{}, fmt.Errorf("tier config %s defines no tiers", path)
	}
	return cfg, nil
}
