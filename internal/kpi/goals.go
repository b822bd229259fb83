package kpi

import (
	"fmt"

	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// AddGoal appends a new goal. Titles must be non-empty and targets non-zero.
func AddGoal(goals []models.Goal, title string, target decimal.Decimal) ([]models.Goal, models.Goal, error) {
	if title == "" {
		return goals, models.Goal{}, fmt.Errorf("goal title must not be empty")
	}
	if target.IsZero() {
		return goals, models.Goal{}, fmt.Errorf("goal target must not be zero")
	}
	g := models.NewGoal(title, target)
	return append(goals, g), g, nil
}

// UpdateGoal sets the current value of the goal with the given id.
func UpdateGoal(goals []models.Goal, id string, current decimal.Decimal) ([]models.Goal, error) {
	out := make([]models.Goal, len(goals))
	copy(out, goals)
	for i := range out {
		if out[i].ID == id {
			out[i].Current = current
			return out, nil
		}
	}
	return goals, fmt.Errorf("goal %q not found", id)
}

// RemoveGoal drops the goal with the given id.
func RemoveGoal(goals []models.Goal, id string) ([]models.Goal, error) {
	for i, g := range goals {
		if g.ID == id {
			out := make([]models.Goal, 0, len(goals)-1)
			out = append(out, goals[:i]...)
			return append(out, goals[i+1:]...), nil
		}
	}
	return goals, fmt.Errorf("goal %q not found", id)
}
