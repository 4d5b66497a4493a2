package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidConfiguration - общая ошибка некорректной конфигурации правил.
var ErrInvalidConfiguration = errors.New("invalid configuration")

type RoundRobinType string

const (
	RoundRobinOneWay RoundRobinType = "one-way"
	RoundRobinTwoWay RoundRobinType = "two-way"
)

func (t RoundRobinType) IsValid() bool {
	return t == RoundRobinOneWay || t == RoundRobinTwoWay
}

type TiebreakerCriterion string

const (
	TiebreakerGoalDifference    TiebreakerCriterion = "goalDifference"
	TiebreakerGoalsFor          TiebreakerCriterion = "goalsFor"
	TiebreakerMatchesWon        TiebreakerCriterion = "matchesWon"
	TiebreakerDirectResult      TiebreakerCriterion = "directResult"
	TiebreakerPointsCoefficient TiebreakerCriterion = "pointsCoefficient"
	TiebreakerDrawLot           TiebreakerCriterion = "drawLot"
)

var knownTiebreakers = map[TiebreakerCriterion]bool{
	TiebreakerGoalDifference:    true,
	TiebreakerGoalsFor:          true,
	TiebreakerMatchesWon:        true,
	TiebreakerDirectResult:      true,
	TiebreakerPointsCoefficient: true,
	TiebreakerDrawLot:           true,
}

func (c TiebreakerCriterion) IsKnown() bool {
	return knownTiebreakers[c]
}

type TiebreakerRule struct {
	ID       TiebreakerCriterion `json:"id"`
	Priority int                 `json:"priority"`
	Enabled  bool                `json:"enabled"`
}

// RulesConfig - правила начисления очков и определения мест.
type RulesConfig struct {
	PointsForWin   int              `json:"pointsForWin"`
	PointsForDraw  int              `json:"pointsForDraw"`
	PointsForLoss  int              `json:"pointsForLoss"`
	RoundRobinType RoundRobinType   `json:"roundRobinType"`
	Tiebreakers    []TiebreakerRule `json:"tiebreakers"`

	// GroupsSeeded выводится из SeedingState и игнорируется при сохранении.
	GroupsSeeded bool `json:"groupsSeeded"`
}

// DefaultRules возвращает правила по умолчанию: 3/1/0, одна ротация,
// разница мячей и забитые мячи как критерии.
func DefaultRules() *RulesConfig {
	return &RulesConfig{
		PointsForWin:   3,
		PointsForDraw:  1,
		PointsForLoss:  0,
		RoundRobinType: RoundRobinOneWay,
		Tiebreakers: []TiebreakerRule{
			{ID: TiebreakerGoalDifference, Priority: 1, Enabled: true},
			{ID: TiebreakerGoalsFor, Priority: 2, Enabled: true},
			{ID: TiebreakerMatchesWon, Priority: 0, Enabled: false},
			{ID: TiebreakerDirectResult, Priority: 0, Enabled: false},
			{ID: TiebreakerPointsCoefficient, Priority: 0, Enabled: false},
			{ID: TiebreakerDrawLot, Priority: 0, Enabled: false},
		},
	}
}

// ValidationError собирает ошибки по полям.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidConfiguration, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// Validate проверяет правила. Включенные критерии должны иметь уникальные
// последовательные приоритеты начиная с 1, выключенные - приоритет 0.
func (c *RulesConfig) Validate() error {
	fields := make(map[string]string)

	if c.PointsForWin < 0 {
		fields["pointsForWin"] = "must be a non-negative integer"
	}
	if c.PointsForDraw < 0 {
		fields["pointsForDraw"] = "must be a non-negative integer"
	}
	if c.PointsForLoss < 0 {
		fields["pointsForLoss"] = "must be a non-negative integer"
	}
	if !c.RoundRobinType.IsValid() {
		fields["roundRobinType"] = fmt.Sprintf("must be %q or %q, got %q", RoundRobinOneWay, RoundRobinTwoWay, c.RoundRobinType)
	}

	seen := make(map[TiebreakerCriterion]bool, len(c.Tiebreakers))
	priorities := make([]int, 0, len(c.Tiebreakers))
	for i, tb := range c.Tiebreakers {
		key := fmt.Sprintf("tiebreakers[%d]", i)
		if !tb.ID.IsKnown() {
			fields[key] = fmt.Sprintf("unknown tiebreaker criterion %q", tb.ID)
			continue
		}
		if seen[tb.ID] {
			fields[key] = fmt.Sprintf("duplicate tiebreaker criterion %q", tb.ID)
			continue
		}
		seen[tb.ID] = true
		if !tb.Enabled {
			if tb.Priority != 0 {
				fields[key] = "disabled tiebreaker must have priority 0"
			}
			continue
		}
		priorities = append(priorities, tb.Priority)
	}

	sort.Ints(priorities)
	for i, p := range priorities {
		if p != i+1 {
			fields["tiebreakers"] = "enabled tiebreakers must have unique sequential priorities starting at 1"
			break
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// EnabledTiebreakers возвращает включенные критерии в порядке приоритета.
func (c *RulesConfig) EnabledTiebreakers() []TiebreakerCriterion {
	enabled := make([]TiebreakerRule, 0, len(c.Tiebreakers))
	for _, tb := range c.Tiebreakers {
		if tb.Enabled {
			enabled = append(enabled, tb)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})
	result := make([]TiebreakerCriterion, len(enabled))
	for i, tb := range enabled {
		result[i] = tb.ID
	}
	return result
}
