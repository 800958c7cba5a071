package model

import "time"

// CustomColumnKind separates the two user-defined column registries on the
// traffic spreadsheet.
type CustomColumnKind string

const (
	ColumnKindOperational CustomColumnKind = "operational"
	ColumnKindPlanning    CustomColumnKind = "planning"
)

// CustomColumn is a user-defined spreadsheet column. Campaign values for it
// live in the campaign's value map keyed by this column's id, so the schema
// stays statically checkable.
type CustomColumn struct {
	ID    string           `json:"id"`
	Title string           `json:"title"`
	Kind  CustomColumnKind `json:"kind"`
}

// TrafficCampaign is one row of the paid-traffic spreadsheet. It has no
// relationship to Task.
type TrafficCampaign struct {
	ID       string         `json:"id"`
	Platform SocialPlatform `json:"platform"`
	Name     string         `json:"name"`
	Active   bool           `json:"active"`

	BudgetMonth float64 `json:"budget_month"`
	BudgetDaily float64 `json:"budget_daily"`
	Spent       float64 `json:"spent"`
	CPC         float64 `json:"cpc"`
	Conversions int     `json:"conversions"`
	ROI         float64 `json:"roi"`

	CreativeURL string `json:"creative_url,omitempty"`
	Caption     string `json:"caption,omitempty"`
	Objective   string `json:"objective,omitempty"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	LeadsTarget int `json:"leads_target,omitempty"`
	SalesTarget int `json:"sales_target,omitempty"`
	LeadsResult int `json:"leads_result,omitempty"`
	SalesResult int `json:"sales_result,omitempty"`

	// CustomValues and PlanningValues map a CustomColumn id to this
	// campaign's cell value for it. Values for unknown column ids are
	// tolerated and simply not rendered.
	CustomValues   map[string]string `json:"custom_values"`
	PlanningValues map[string]string `json:"planning_values"`
}
