package model

import "fmt"

type ItemType string

const (
	ItemTypeTechSkill     ItemType = "TECH_SKILL"
	ItemTypeSoftSkill     ItemType = "SOFT_SKILL"
	ItemTypeCertification ItemType = "CERTIFICATION"
)

// ItemTypes is the closed set of item types, in display order.
var ItemTypes = []ItemType{ItemTypeTechSkill, ItemTypeSoftSkill, ItemTypeCertification}

func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeTechSkill, ItemTypeSoftSkill, ItemTypeCertification:
		return true
	}
	return false
}

// UnknownItemTypeError reports a value outside ItemTypes.
type UnknownItemTypeError struct {
	Value string
}

func (e *UnknownItemTypeError) Error() string {
	return fmt.Sprintf("unknown checklist item type %q", e.Value)
}

func ParseItemType(s string) (ItemType, error) {
	t := ItemType(s)
	if !t.Valid() {
		return "", &UnknownItemTypeError{Value: s}
	}
	return t, nil
}

type ItemStatus string

const (
	StatusNotStarted ItemStatus = "NOT_STARTED"
	StatusInProgress ItemStatus = "IN_PROGRESS"
	StatusDone       ItemStatus = "DONE"
)

// ItemStatuses lists every status in the order the UI offers them.
var ItemStatuses = []ItemStatus{StatusNotStarted, StatusInProgress, StatusDone}

func (s ItemStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusDone:
		return true
	}
	return false
}

func ParseItemStatus(s string) (ItemStatus, bool) {
	st := ItemStatus(s)
	return st, st.Valid()
}
