package repository

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/rebalancer/internal/domain"
)

// Wire records. Amounts travel as bare JSON numbers; numeric strings are
// accepted on read. A missing amount reads as zero.

type holdingRecord struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	TargetRatio  json.Number `json:"targetRatio"`
	CurrentValue json.Number `json:"currentValue"`
}

func fromHolding(h domain.Holding) holdingRecord {
	return holdingRecord{
		ID:           h.ID.String(),
		Name:         h.Name,
		TargetRatio:  json.Number(h.TargetRatio.String()),
		CurrentValue: json.Number(h.CurrentValue.String()),
	}
}

func (r holdingRecord) toDomain() (domain.Holding, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return domain.Holding{}, fmt.Errorf("invalid holding id %q: %w", r.ID, err)
	}
	target, err := parseAmount(r.TargetRatio)
	if err != nil {
		return domain.Holding{}, fmt.Errorf("invalid targetRatio: %w", err)
	}
	value, err := parseAmount(r.CurrentValue)
	if err != nil {
		return domain.Holding{}, fmt.Errorf("invalid currentValue: %w", err)
	}

	h := domain.Holding{ID: id, Name: r.Name, TargetRatio: target, CurrentValue: value}
	if err := h.Validate(); err != nil {
		return domain.Holding{}, err
	}
	return h, nil
}

type historyRecord struct {
	Timestamp   int64       `json:"timestamp"`
	TotalAssets json.Number `json:"totalAssets"`
}

func fromHistory(a domain.AssetHistory) historyRecord {
	return historyRecord{Timestamp: a.Timestamp, TotalAssets: json.Number(a.TotalAssets.String())}
}

func (r historyRecord) toDomain() (domain.AssetHistory, error) {
	total, err := parseAmount(r.TotalAssets)
	if err != nil {
		return domain.AssetHistory{}, fmt.Errorf("invalid totalAssets: %w", err)
	}

	a := domain.AssetHistory{Timestamp: r.Timestamp, TotalAssets: total}
	if err := a.Validate(); err != nil {
		return domain.AssetHistory{}, err
	}
	return a, nil
}

type presetRecord struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Holdings     []holdingRecord `json:"holdings"`
	LastModified int64           `json:"lastModified"`
}

func fromPreset(p domain.PortfolioPreset) presetRecord {
	holdings := make([]holdingRecord, len(p.Holdings))
	for i, h := range p.Holdings {
		holdings[i] = fromHolding(h)
	}
	return presetRecord{
		ID:           p.ID.String(),
		Name:         p.Name,
		Description:  p.Description,
		Holdings:     holdings,
		LastModified: p.LastModified,
	}
}

// toDomain rejects the whole preset when any of its holdings is malformed:
// a preset silently missing a line would no longer be the set the user saved.
func (r presetRecord) toDomain() (domain.PortfolioPreset, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return domain.PortfolioPreset{}, fmt.Errorf("invalid preset id %q: %w", r.ID, err)
	}

	holdings := make([]domain.Holding, 0, len(r.Holdings))
	for i, hr := range r.Holdings {
		h, err := hr.toDomain()
		if err != nil {
			return domain.PortfolioPreset{}, fmt.Errorf("holding %d: %w", i, err)
		}
		holdings = append(holdings, h)
	}

	p := domain.PortfolioPreset{
		ID:           id,
		Name:         r.Name,
		Description:  r.Description,
		Holdings:     holdings,
		LastModified: r.LastModified,
	}
	if err := p.Validate(); err != nil {
		return domain.PortfolioPreset{}, err
	}
	return p, nil
}

type eventRecord struct {
	ID    int64       `json:"id"`
	Title string      `json:"title"`
	Date  domain.Date `json:"date"`
}

func fromEvent(e domain.CalendarEvent) eventRecord {
	return eventRecord{ID: e.ID, Title: e.Title, Date: e.Date}
}

func (r eventRecord) toDomain() (domain.CalendarEvent, error) {
	e := domain.CalendarEvent{ID: r.ID, Title: r.Title, Date: r.Date}
	if err := e.Validate(); err != nil {
		return domain.CalendarEvent{}, err
	}
	return e, nil
}

type settingsRecord struct {
	DarkMode  bool   `json:"darkMode"`
	FontScale int    `json:"fontScale"`
	Language  string `json:"language"`
}

func parseAmount(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}
