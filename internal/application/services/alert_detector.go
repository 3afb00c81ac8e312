package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/demandlens/backend/internal/domain/entities"
)

const (
	scoreSpikeThreshold     = 15
	scoreSpikeHighThreshold = 25
	volumeSpikeThreshold    = 50
	volumeSpikeHigh         = 100
	newAngleThreshold       = 2
	newAngleHighThreshold   = 5
	pricingChangeThreshold  = 10
	pricingChangeHigh       = 20
	painSurgeThreshold      = 2
	painSurgeTopN           = 5
	featureChangeHighCount  = 3
	alertExampleLimit       = 3
)

// DetectAlerts diffs two weekly snapshots of the same niche and returns every
// alert whose rule fired. previous is nil on a niche's first week; rules that
// need a baseline are skipped then. Rules are independent, so several alerts
// can come out of one call.
func DetectAlerts(current, previous *entities.DemandSnapshot) []*entities.Alert {
	alerts := []*entities.Alert{}

	if previous != nil {
		if a := detectScoreSpike(current, previous); a != nil {
			alerts = append(alerts, a)
		}
	}
	if a := detectVolumeSpike(current); a != nil {
		alerts = append(alerts, a)
	}
	if previous != nil {
		if a := detectNewAngles(current, previous); a != nil {
			alerts = append(alerts, a)
		}
	}
	if a := detectPricingChange(current); a != nil {
		alerts = append(alerts, a)
	}
	if previous != nil {
		if a := detectPainSurge(current, previous); a != nil {
			alerts = append(alerts, a)
		}
	}
	if a := detectFeatureChanges(current); a != nil {
		alerts = append(alerts, a)
	}

	return alerts
}

func newAlert(nicheID string, alertType entities.AlertType, urgency entities.AlertUrgency, title, body string) *entities.Alert {
	return &entities.Alert{
		ID:        uuid.New().String(),
		NicheID:   nicheID,
		Type:      alertType,
		Title:     title,
		Body:      body,
		Urgency:   urgency,
		CreatedAt: time.Now(),
	}
}

func detectScoreSpike(current, previous *entities.DemandSnapshot) *entities.Alert {
	delta := current.DemandScore - previous.DemandScore
	if delta < scoreSpikeThreshold {
		return nil
	}

	urgency := entities.UrgencyMedium
	if delta >= scoreSpikeHighThreshold {
		urgency = entities.UrgencyHigh
	}
	return newAlert(current.NicheID, entities.AlertTrendSpike, urgency,
		"Demand score jumped",
		fmt.Sprintf("Demand score rose %.0f points week over week (%.0f to %.0f).",
			delta, previous.DemandScore, current.DemandScore))
}

func detectVolumeSpike(current *entities.DemandSnapshot) *entities.Alert {
	pct := current.SearchSignals.VolumeChangePct
	if pct < volumeSpikeThreshold {
		return nil
	}

	urgency := entities.UrgencyMedium
	if pct >= volumeSpikeHigh {
		urgency = entities.UrgencyHigh
	}
	return newAlert(current.NicheID, entities.AlertTrendSpike, urgency,
		"Search volume surging",
		fmt.Sprintf("Search volume is up %.0f%% this week (%d searches).",
			pct, current.SearchSignals.Volume))
}

func detectNewAngles(current, previous *entities.DemandSnapshot) *entities.Alert {
	known := make(map[string]bool, len(previous.AdSignals.TopAngles))
	for _, angle := range previous.AdSignals.TopAngles {
		known[angle] = true
	}

	var fresh []string
	for _, angle := range current.AdSignals.TopAngles {
		if !known[angle] {
			fresh = append(fresh, angle)
		}
	}
	if len(fresh) < newAngleThreshold {
		return nil
	}

	urgency := entities.UrgencyMedium
	if len(fresh) >= newAngleHighThreshold {
		urgency = entities.UrgencyHigh
	}
	examples := fresh
	if len(examples) > alertExampleLimit {
		examples = examples[:alertExampleLimit]
	}
	return newAlert(current.NicheID, entities.AlertNewAngle, urgency,
		"Competitors testing new angles",
		fmt.Sprintf("%d new ad angles appeared this week: %s.",
			len(fresh), strings.Join(examples, ", ")))
}

func detectPricingChange(current *entities.DemandSnapshot) *entities.Alert {
	var significant []entities.PricingChange
	for _, change := range current.CompetitorSignals.PricingChanges {
		if math.Abs(change.PercentChange) >= pricingChangeThreshold {
			significant = append(significant, change)
		}
	}
	if len(significant) == 0 {
		return nil
	}

	first := significant[0]
	urgency := entities.UrgencyMedium
	if math.Abs(first.PercentChange) >= pricingChangeHigh {
		urgency = entities.UrgencyHigh
	}
	direction := "raised"
	if first.NewPrice < first.OldPrice {
		direction = "dropped"
	}
	return newAlert(current.NicheID, entities.AlertCompetitorPrice, urgency,
		fmt.Sprintf("%s %s prices", first.Competitor, direction),
		fmt.Sprintf("%s moved from $%.2f to $%.2f (%.0f%%). %d competitor price change(s) this week.",
			first.Competitor, first.OldPrice, first.NewPrice, first.PercentChange, len(significant)))
}

func detectPainSurge(current, previous *entities.DemandSnapshot) *entities.Alert {
	prevTop := topN(previous.ForumSignals.TopComplaints, painSurgeTopN)
	known := make(map[string]bool, len(prevTop))
	for _, complaint := range prevTop {
		known[complaint] = true
	}

	var fresh []string
	for _, complaint := range topN(current.ForumSignals.TopComplaints, painSurgeTopN) {
		if !known[complaint] {
			fresh = append(fresh, complaint)
		}
	}
	if len(fresh) < painSurgeThreshold {
		return nil
	}

	examples := fresh
	if len(examples) > alertExampleLimit {
		examples = examples[:alertExampleLimit]
	}
	return newAlert(current.NicheID, entities.AlertPainSurge, entities.UrgencyMedium,
		"New complaints surfacing",
		fmt.Sprintf("%d new complaints entered the top 5 this week: %s.",
			len(fresh), strings.Join(examples, ", ")))
}

func detectFeatureChanges(current *entities.DemandSnapshot) *entities.Alert {
	changes := current.CompetitorSignals.FeatureChanges
	if len(changes) == 0 {
		return nil
	}

	competitors := map[string]bool{}
	for _, change := range changes {
		competitors[change.Competitor] = true
	}

	urgency := entities.UrgencyLow
	if len(competitors) >= featureChangeHighCount {
		urgency = entities.UrgencyHigh
	}
	return newAlert(current.NicheID, entities.AlertFeatureChange, urgency,
		"Competitor feature activity",
		fmt.Sprintf("%d feature change(s) across %d competitor(s), starting with %s (%s %s).",
			len(changes), len(competitors), changes[0].Competitor, changes[0].Kind, changes[0].Feature))
}

func topN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
