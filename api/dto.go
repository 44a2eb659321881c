/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import "github.com/mnemes/tip-engine/tips"

// =============================================================================
// AUTH
// =============================================================================

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// =============================================================================
// STAFF
// =============================================================================

// StaffDTO represents a registry member. Points is a string so the
// decimal value survives the JSON round trip unchanged.
type StaffDTO struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Points string `json:"points"`
}

type AddStaffRequest struct {
	Name   string `json:"name"`
	Points string `json:"points"`
}

type RemoveStaffRequest struct {
	Names []string `json:"names"`
}

type UpdatePointsRequest struct {
	Points string `json:"points"`
}

// =============================================================================
// DAYS
// =============================================================================

// SaveDayRequest saves or edits a day. Staff lists the selected names;
// their points are resolved from the registry at save time.
type SaveDayRequest struct {
	TotalTips string   `json:"total_tips"`
	Staff     []string `json:"staff"`
}

// ShareDTO is one computed staff share.
type ShareDTO struct {
	Name   string `json:"name"`
	Points string `json:"points"`
	Share  string `json:"share"`
}

// AllocationDTO is the result of a save/edit.
type AllocationDTO struct {
	Date        string     `json:"date"`
	TotalTips   string     `json:"total_tips"`
	KitchenCut  string     `json:"kitchen_cut"`
	DamageCut   string     `json:"damage_cut"`
	Net         string     `json:"net"`
	PointValue  string     `json:"point_value"`
	Unallocated bool       `json:"unallocated,omitempty"`
	Shares      []ShareDTO `json:"shares"`
}

// DayDTO is a stored snapshot.
type DayDTO struct {
	Date       string     `json:"date"`
	GrossTips  string     `json:"gross_tips"`
	Net        string     `json:"net"`
	KitchenCut string     `json:"kitchen_cut"`
	DamageCut  string     `json:"damage_cut"`
	Staff      []ShareDTO `json:"staff"`
}

// =============================================================================
// SUMMARIES
// =============================================================================

type StaffTotalDTO struct {
	Name  string `json:"name"`
	Share string `json:"share"`
}

type RangeSummaryDTO struct {
	From       string          `json:"from"`
	To         string          `json:"to"`
	PerStaff   []StaffTotalDTO `json:"per_staff"`
	StaffShare string          `json:"staff_share"`
	KitchenCut string          `json:"kitchen_cut"`
	DamageCut  string          `json:"damage_cut"`
}

type DailyTotalDTO struct {
	Date       string `json:"date"`
	GrossTips  string `json:"gross_tips"`
	StaffShare string `json:"staff_share"`
	KitchenCut string `json:"kitchen_cut"`
	DamageCut  string `json:"damage_cut"`
}

// =============================================================================
// REPORTS
// =============================================================================

// ReportTableDTO mirrors tips.ReportTable for the external renderer.
type ReportTableDTO struct {
	Title  string     `json:"title"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

func reportTableDTO(t tips.ReportTable) ReportTableDTO {
	return ReportTableDTO{Title: t.Title, Header: t.Header, Rows: t.Rows}
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func staffDTO(m tips.StaffMember) StaffDTO {
	return StaffDTO{ID: m.ID, Name: m.Name, Points: m.Points.String()}
}

func allocationDTO(date tips.Date, a tips.Allocation) AllocationDTO {
	dto := AllocationDTO{
		Date:        date.String(),
		TotalTips:   a.Total.StringFixed(2),
		KitchenCut:  a.KitchenCut.StringFixed(2),
		DamageCut:   a.DamageCut.StringFixed(2),
		Net:         a.Net.StringFixed(2),
		PointValue:  a.PointValue.StringFixed(2),
		Unallocated: a.Unallocated(),
		Shares:      make([]ShareDTO, 0, len(a.Shares)),
	}
	for _, s := range a.Shares {
		dto.Shares = append(dto.Shares, ShareDTO{
			Name:   s.Name,
			Points: s.Points.String(),
			Share:  s.Share.StringFixed(2),
		})
	}
	return dto
}

func dayDTO(snap *tips.DaySnapshot) DayDTO {
	dto := DayDTO{
		Date:       snap.Date.String(),
		GrossTips:  snap.GrossTips().StringFixed(2),
		Net:        snap.Net().StringFixed(2),
		KitchenCut: snap.Summary.KitchenCut.StringFixed(2),
		DamageCut:  snap.Summary.DamageCut.StringFixed(2),
		Staff:      make([]ShareDTO, 0, len(snap.Staff)),
	}
	for _, r := range snap.Staff {
		dto.Staff = append(dto.Staff, ShareDTO{
			Name:   r.Name,
			Points: r.Points.String(),
			Share:  r.Share.StringFixed(2),
		})
	}
	return dto
}

func rangeSummaryDTO(s tips.RangeSummary) RangeSummaryDTO {
	dto := RangeSummaryDTO{
		From:       s.Period.Start.String(),
		To:         s.Period.End.String(),
		PerStaff:   make([]StaffTotalDTO, 0, len(s.PerStaff)),
		StaffShare: s.StaffShare.StringFixed(2),
		KitchenCut: s.KitchenCut.StringFixed(2),
		DamageCut:  s.DamageCut.StringFixed(2),
	}
	for _, t := range s.PerStaff {
		dto.PerStaff = append(dto.PerStaff, StaffTotalDTO{Name: t.Name, Share: t.Share.StringFixed(2)})
	}
	return dto
}

func dailyTotalDTOs(totals []tips.DailyTotal) []DailyTotalDTO {
	dtos := make([]DailyTotalDTO, 0, len(totals))
	for _, t := range totals {
		dtos = append(dtos, DailyTotalDTO{
			Date:       t.Date.String(),
			GrossTips:  t.GrossTips.StringFixed(2),
			StaffShare: t.StaffShare.StringFixed(2),
			KitchenCut: t.KitchenCut.StringFixed(2),
			DamageCut:  t.DamageCut.StringFixed(2),
		})
	}
	return dtos
}
