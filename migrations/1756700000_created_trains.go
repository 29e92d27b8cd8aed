package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("trains")

		collection.Fields.Add(
			&core.TextField{Name: "name", Required: true},
			&core.TextField{Name: "train_number", Required: true},
			&core.TextField{Name: "departure_station", Required: true},
			&core.TextField{Name: "arrival_station", Required: true},
			&core.DateField{Name: "departure_date", Required: true},
			&core.TextField{Name: "departure_time"},
			&core.TextField{Name: "arrival_time"},
			&core.NumberField{Name: "total_seats", Required: true, OnlyInt: true, Min: types.Pointer(1.0)},
			&core.NumberField{Name: "available_seats", OnlyInt: true, Min: types.Pointer(0.0)},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_trains_route", false, "departure_station, arrival_station", "")
		collection.AddIndex("idx_trains_departure_date", false, "departure_date", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("trains")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
