package domain

import (
	"fmt"
	"strings"
)

// TransitionMode selects how status changes are checked.
//
//	permissive: any known status may be set by an authorized writer
//	strict:     only the edges listed in the transition tables below
type TransitionMode string

const (
	TransitionsPermissive TransitionMode = "permissive"
	TransitionsStrict     TransitionMode = "strict"
)

// ParseTransitionMode falls back to permissive for empty or unknown input.
func ParseTransitionMode(s string) TransitionMode {
	if TransitionMode(strings.ToLower(strings.TrimSpace(s))) == TransitionsStrict {
		return TransitionsStrict
	}
	return TransitionsPermissive
}

var leadTransitions = map[LeadStatus][]LeadStatus{
	LeadNew:                {LeadContacted, LeadClosedLost, LeadDead},
	LeadContacted:          {LeadInterested, LeadClosedLost, LeadDead},
	LeadInterested:         {LeadSiteVisitScheduled, LeadNegotiating, LeadClosedLost, LeadDead},
	LeadSiteVisitScheduled: {LeadInterested, LeadNegotiating, LeadClosedLost, LeadDead},
	LeadNegotiating:        {LeadClosedWon, LeadClosedLost, LeadDead},
}

var visitTransitions = map[VisitStatus][]VisitStatus{
	VisitScheduled:   {VisitCompleted, VisitNoShow, VisitRescheduled, VisitCancelled},
	VisitRescheduled: {VisitCompleted, VisitNoShow, VisitRescheduled, VisitCancelled},
}

var propertyTransitions = map[PropertyStatus][]PropertyStatus{
	PropertyAvailable:  {PropertyUnderOffer, PropertyRented, PropertySold, PropertyOffMarket},
	PropertyUnderOffer: {PropertyAvailable, PropertyRented, PropertySold, PropertyOffMarket},
	PropertyRented:     {PropertyAvailable, PropertySold, PropertyOffMarket},
	PropertyOffMarket:  {PropertyAvailable},
}

func canTransition[S comparable](table map[S][]S, from, to S) bool {
	if from == to {
		return true
	}
	for _, allowed := range table[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the strict table allows s -> next.
func (s LeadStatus) CanTransitionTo(next LeadStatus) bool {
	return canTransition(leadTransitions, s, next)
}

// CanTransitionTo reports whether the strict table allows s -> next.
func (s VisitStatus) CanTransitionTo(next VisitStatus) bool {
	return canTransition(visitTransitions, s, next)
}

// CanTransitionTo reports whether the strict table allows s -> next.
func (s PropertyStatus) CanTransitionTo(next PropertyStatus) bool {
	return canTransition(propertyTransitions, s, next)
}

// TransitionPolicy applies the configured mode to status changes.
type TransitionPolicy struct {
	Mode TransitionMode
}

func (p TransitionPolicy) check(ok bool, from, to string) error {
	if p.Mode != TransitionsStrict || ok {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

func (p TransitionPolicy) Lead(from, to LeadStatus) error {
	return p.check(from.CanTransitionTo(to), string(from), string(to))
}

func (p TransitionPolicy) Visit(from, to VisitStatus) error {
	return p.check(from.CanTransitionTo(to), string(from), string(to))
}

func (p TransitionPolicy) Property(from, to PropertyStatus) error {
	return p.check(from.CanTransitionTo(to), string(from), string(to))
}
