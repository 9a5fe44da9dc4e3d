package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/freightdesk/internal/domain/model"
)

// DefaultRatePerKM applies to unknown truck types.
const DefaultRatePerKM = 45

var ratePerKM = map[model.TruckType]int64{
	model.TruckOpen:             45,
	model.TruckClosedContainer:  52,
	model.TruckTrailer:          60,
	model.TruckFlatbed:          55,
	model.TruckRefrigerated:     70,
	model.TruckTanker:           65,
	model.TruckTipper:           50,
	model.TruckMini:             30,
	model.TruckLCV:              35,
	model.TruckPickup:           28,
	model.TruckContainer20ft:    58,
	model.TruckContainer32ft:    66,
	model.TruckMultiAxle:        68,
	model.TruckLowBed:           75,
	model.TruckCarCarrier:       72,
	model.TruckBulker:           62,
	model.TruckTataAce:          25,
	model.TruckTempo:            32,
	model.TruckHydraulicTrailer: 80,
}

// RatePerKM returns the haulage rate of a truck type.
func RatePerKM(t model.TruckType) decimal.Decimal {
	known, _ := model.ParseTruckType(string(t))
	if rate, ok := ratePerKM[known]; ok {
		return decimal.NewFromInt(rate)
	}
	return decimal.NewFromInt(DefaultRatePerKM)
}
