package models

import "time"

// EquityCurveRecordDTO is the CSV projection of an EquityCurveRecord.
type EquityCurveRecordDTO struct {
	Date        string  `csv:"date"`
	StockPL     float64 `csv:"stock_pl"`
	OptionPL    float64 `csv:"option_pl"`
	TotalPL     float64 `csv:"total_pl"`
	DailyChange float64 `csv:"daily_change"`
	Equity      float64 `csv:"equity"`
}

func (r *EquityCurveRecord) ToDTO() *EquityCurveRecordDTO {
	return &EquityCurveRecordDTO{
		Date:        r.Date.Format("2006-01-02"),
		StockPL:     r.StockPL,
		OptionPL:    r.OptionPL,
		TotalPL:     r.TotalPL,
		DailyChange: r.DailyChange,
		Equity:      r.Equity,
	}
}

func (r *EquityCurveRecordDTO) ToModel() (*EquityCurveRecord, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return nil, err
	}

	return &EquityCurveRecord{
		Date:        date,
		StockPL:     r.StockPL,
		OptionPL:    r.OptionPL,
		TotalPL:     r.TotalPL,
		DailyChange: r.DailyChange,
		Equity:      r.Equity,
	}, nil
}
