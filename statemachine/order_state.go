package statemachine

import (
	"errors"
	"strings"

	"food-ordering-api/models"
)

// synonyms maps every status spelling seen across the older services onto the
// canonical lowercase vocabulary. Input is lowercased first, so the uppercase
// variants (PENDING, CONFIRMED, ...) land here too.
var synonyms = map[string]models.OrderStatus{
	"pending":          models.StatusPending,
	"placed":           models.StatusPending,
	"accepted":         models.StatusAccepted,
	"confirmed":        models.StatusAccepted,
	"preparing":        models.StatusPreparing,
	"ready":            models.StatusReady,
	"ready_for_pickup": models.StatusReady,
	"out_for_delivery": models.StatusOutForDelivery,
	"delivered":        models.StatusDelivered,
	"cancelled":        models.StatusCancelled,
	"canceled":         models.StatusCancelled,
}

// Normalize resolves any spelling of an order status to its canonical form.
// Unrecognized values come back with ok=false; callers must treat those as
// having no advance transition, not as an error.
func Normalize(s string) (models.OrderStatus, bool) {
	canon, ok := synonyms[strings.ToLower(strings.TrimSpace(s))]
	return canon, ok
}

// advance is the forward-only "next status" table
var advance = map[models.OrderStatus]models.OrderStatus{
	models.StatusPending:        models.StatusAccepted,
	models.StatusAccepted:       models.StatusPreparing,
	models.StatusPreparing:      models.StatusReady,
	models.StatusReady:          models.StatusOutForDelivery,
	models.StatusOutForDelivery: models.StatusDelivered,
}

// NextStatus returns the single allowed advance from the given status.
// Case-insensitive, synonym-tolerant. Terminal and unknown statuses have no
// next transition.
func NextStatus(current string) (models.OrderStatus, bool) {
	canon, ok := Normalize(current)
	if !ok {
		return "", false
	}
	next, ok := advance[canon]
	return next, ok
}

// IsTerminal reports whether no further transitions exist from the status
func IsTerminal(s models.OrderStatus) bool {
	return s == models.StatusDelivered || s == models.StatusCancelled
}

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "restaurant", "driver", "customer", "admin"
}

// validTransitions is the authoritative state machine definition. The advance
// table above is its forward spine; cancellation edges exist from every
// non-terminal state but only for the actors listed here.
var validTransitions = []Transition{
	// Restaurant works the kitchen side
	{From: models.StatusPending, To: models.StatusAccepted, Actor: "restaurant"},
	{From: models.StatusAccepted, To: models.StatusPreparing, Actor: "restaurant"},
	{From: models.StatusPreparing, To: models.StatusReady, Actor: "restaurant"},
	// Driver works the road side
	{From: models.StatusReady, To: models.StatusOutForDelivery, Actor: "driver"},
	{From: models.StatusOutForDelivery, To: models.StatusDelivered, Actor: "driver"},
	// Customer may back out before the kitchen starts
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "customer"},
	{From: models.StatusAccepted, To: models.StatusCancelled, Actor: "customer"},
	// Restaurant may cancel anything still in flight
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "restaurant"},
	{From: models.StatusAccepted, To: models.StatusCancelled, Actor: "restaurant"},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: "restaurant"},
	{From: models.StatusReady, To: models.StatusCancelled, Actor: "restaurant"},
	{From: models.StatusOutForDelivery, To: models.StatusCancelled, Actor: "restaurant"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move an order from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
