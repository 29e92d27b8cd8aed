package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("cargos")

		collection.Fields.Add(
			&core.TextField{Name: "user_id", Required: true},
			&core.EmailField{Name: "user_email"},
			&core.TextField{Name: "sender_name"},
			&core.TextField{Name: "recipient_name"},
			&core.TextField{Name: "from", Required: true},
			&core.TextField{Name: "to", Required: true},
			&core.DateField{Name: "shipping_date", Required: true},
			&core.SelectField{Name: "cargo_type", Required: true, MaxSelect: 1, Values: []string{"general", "fragile", "perishable", "dangerous"}},
			&core.NumberField{Name: "weight", Required: true, Min: types.Pointer(0.0)},
			&core.TextField{Name: "special_instructions"},
			&core.TextField{Name: "tracking_number", Required: true},
			&core.TextField{Name: "pickup_code_hash", Hidden: true},
			&core.SelectField{Name: "status", Required: true, MaxSelect: 1, Values: []string{"Pending", "In Transit", "Delivered", "Cancelled"}},
			&core.NumberField{Name: "cost"},
			&core.DateField{Name: "delivered_at"},
			&core.DateField{Name: "cancelled_at"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_cargos_tracking_number", true, "tracking_number", "")
		collection.AddIndex("idx_cargos_user_id", false, "user_id", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("cargos")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
