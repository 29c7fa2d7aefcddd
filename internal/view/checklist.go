package view

import (
	"strconv"
	"strings"
	"time"

	"github.com/sakif/skillup/internal/model"
)

type StatusButton struct {
	Status model.ItemStatus
	Label  string
	Class  string
	Active bool
}

type ItemView struct {
	ID          string
	Name        string
	Description string
	Priority    string
	Status      model.ItemStatus
	Buttons     []StatusButton
}

type SectionView struct {
	Key      string
	Label    string
	Progress Progress
	Items    []ItemView
}

type ChecklistDetailView struct {
	ID             string
	Title          string
	Summary        string
	CareerPathName string
	Overall        Progress
	Sections       []SectionView
}

// NewChecklistDetail builds the detail page model: overall progress across
// every item and one section per item type.
func NewChecklistDetail(d model.ChecklistDetail) ChecklistDetailView {
	keys := make([]string, 0, len(d.GroupedItems))
	byKey := make(map[string][]model.ChecklistItem, len(d.GroupedItems))
	var all []model.ChecklistItem
	for typ, items := range d.GroupedItems {
		keys = append(keys, string(typ))
		byKey[string(typ)] = items
		all = append(all, items...)
	}

	sections := make([]SectionView, 0, len(keys))
	for _, k := range OrderSections(keys) {
		items := byKey[k]
		views := make([]ItemView, 0, len(items))
		for _, it := range items {
			views = append(views, newItemView(it))
		}
		sections = append(sections, SectionView{
			Key:      k,
			Label:    SectionLabel(k),
			Progress: progressOf(items),
			Items:    views,
		})
	}

	return ChecklistDetailView{
		ID:             d.ID,
		Title:          d.Title,
		Summary:        d.Summary,
		CareerPathName: d.CareerPathName,
		Overall:        progressOf(all),
		Sections:       sections,
	}
}

func newItemView(it model.ChecklistItem) ItemView {
	v := ItemView{
		ID:       it.ID,
		Name:     it.Name,
		Priority: "-",
		Status:   it.Status,
	}
	if it.Description != nil {
		v.Description = *it.Description
	}
	if it.Priority != nil {
		v.Priority = strconv.Itoa(*it.Priority)
	}
	for _, s := range model.ItemStatuses {
		v.Buttons = append(v.Buttons, StatusButton{
			Status: s,
			Label:  StatusLabel(s),
			Class:  StatusClass(s),
			Active: s == it.Status,
		})
	}
	return v
}

// StatusLabel replaces the first underscore only ("NOT_STARTED" -> "NOT STARTED").
func StatusLabel(s model.ItemStatus) string {
	return strings.Replace(string(s), "_", " ", 1)
}

func StatusClass(s model.ItemStatus) string {
	switch s {
	case model.StatusDone:
		return "status-done"
	case model.StatusInProgress:
		return "status-progress"
	default:
		return "status-idle"
	}
}

type ChecklistCard struct {
	ID             string
	Title          string
	Summary        string
	CareerPathName string
	BadgeClass     string
	ItemsCount     int
	Updated        string
}

type ChecklistListView struct {
	Email string
	Cards []ChecklistCard
}

// NewChecklistList builds the list page cards in the order given.
func NewChecklistList(summaries []model.ChecklistSummary, email string) ChecklistListView {
	cards := make([]ChecklistCard, 0, len(summaries))
	for _, s := range summaries {
		cards = append(cards, ChecklistCard{
			ID:             s.ID,
			Title:          s.Title,
			Summary:        s.Summary,
			CareerPathName: s.CareerPathName,
			BadgeClass:     BadgeClass(s.CareerPathName),
			ItemsCount:     s.ItemsCount,
			Updated:        formatDate(s.UpdatedAt),
		})
	}
	return ChecklistListView{Email: email, Cards: cards}
}

// BadgeClass picks a colour for a career path from keywords in its name.
func BadgeClass(careerPathName string) string {
	n := strings.ToLower(careerPathName)
	switch {
	case strings.Contains(n, "cyber"):
		return "badge-red"
	case strings.Contains(n, "software"):
		return "badge-blue"
	case strings.Contains(n, "data"):
		return "badge-purple"
	default:
		return "badge-gray"
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
