package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("bookings")

		collection.Fields.Add(
			&core.TextField{Name: "user_id", Required: true},
			&core.EmailField{Name: "user_email"},
			&core.TextField{Name: "train_id", Required: true},
			&core.TextField{Name: "train_name"},
			&core.TextField{Name: "from"},
			&core.TextField{Name: "to"},
			&core.DateField{Name: "date"},
			&core.SelectField{Name: "status", Required: true, MaxSelect: 1, Values: []string{"Confirmed", "Cancelled"}},
			&core.DateField{Name: "cancelled_at"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_bookings_user_id", false, "user_id", "")
		collection.AddIndex("idx_bookings_train_id", false, "train_id", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("bookings")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
