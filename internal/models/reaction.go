package models

import (
	"encoding/json"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ReactionKind is one of the closed set of reactions a user can leave on a post
type ReactionKind string

const (
	ReactionLike       ReactionKind = "like"
	ReactionCelebrate  ReactionKind = "celebrate"
	ReactionSupport    ReactionKind = "support"
	ReactionLove       ReactionKind = "love"
	ReactionInsightful ReactionKind = "insightful"
)

// ReactionKinds lists every accepted kind in display order
var ReactionKinds = []ReactionKind{
	ReactionLike,
	ReactionCelebrate,
	ReactionSupport,
	ReactionLove,
	ReactionInsightful,
}

// ParseReactionKind rejects anything outside ReactionKinds
func ParseReactionKind(s string) (ReactionKind, error) {
	for _, k := range ReactionKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", NewInvalidRequestError(fmt.Sprintf("Invalid reaction type: %q", s))
}

// ReactionTransition is the outcome of toggling a reaction
type ReactionTransition int

const (
	ReactionAdded ReactionTransition = iota + 1
	ReactionRemoved
	ReactionChanged
)

func (t ReactionTransition) String() string {
	switch t {
	case ReactionAdded:
		return "added"
	case ReactionRemoved:
		return "removed"
	case ReactionChanged:
		return "changed"
	}
	return "unknown"
}

// Reaction is the stored and serialized form of a single user's reaction.
type Reaction struct {
	UserID string       `json:"user_id" bson:"user_id"`
	Type   ReactionKind `json:"type" bson:"type"`
}

// Reactions maps a user id to that user's reaction on a post. A user has at most one entry.
// At rest and on the wire it is a list of Reaction ordered by user id.
type Reactions map[string]ReactionKind

// Transition reports what Toggle would do without changing r
func (r Reactions) Transition(userID string, kind ReactionKind) ReactionTransition {
	current, ok := r[userID]
	switch {
	case !ok:
		return ReactionAdded
	case current == kind:
		return ReactionRemoved
	default:
		return ReactionChanged
	}
}

// Toggle applies the reaction state machine for one user and returns the transition taken.
func (r Reactions) Toggle(userID string, kind ReactionKind) ReactionTransition {
	t := r.Transition(userID, kind)
	if t == ReactionRemoved {
		delete(r, userID)
	} else {
		r[userID] = kind
	}
	return t
}

// List returns the reactions ordered by user id
func (r Reactions) List() []Reaction {
	list := make([]Reaction, 0, len(r))
	for userID, kind := range r {
		list = append(list, Reaction{UserID: userID, Type: kind})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UserID < list[j].UserID })
	return list
}

// ReactionsFromList builds the map form. Later entries for the same user win.
func ReactionsFromList(list []Reaction) Reactions {
	r := make(Reactions, len(list))
	for _, entry := range list {
		r[entry.UserID] = entry.Type
	}
	return r
}

func (r Reactions) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(r.List())
}

func (r *Reactions) UnmarshalBSONValue(typ bsontype.Type, data []byte) error {
	if typ == bson.TypeNull || typ == bson.TypeUndefined {
		*r = Reactions{}
		return nil
	}
	var list []Reaction
	if err := (bson.RawValue{Type: typ, Value: data}).Unmarshal(&list); err != nil {
		return fmt.Errorf("decode reactions: %w", err)
	}
	*r = ReactionsFromList(list)
	return nil
}

func (r Reactions) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.List())
}

func (r *Reactions) UnmarshalJSON(data []byte) error {
	var list []Reaction
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*r = ReactionsFromList(list)
	return nil
}
