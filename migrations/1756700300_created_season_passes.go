package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("season_passes")

		collection.Fields.Add(
			&core.TextField{Name: "user_id", Required: true},
			&core.EmailField{Name: "user_email"},
			&core.TextField{Name: "full_name", Required: true},
			&core.TextField{Name: "id_number"},
			&core.TextField{Name: "phone"},
			&core.TextField{Name: "from_station", Required: true},
			&core.TextField{Name: "to_station", Required: true},
			&core.SelectField{Name: "pass_type", Required: true, MaxSelect: 1, Values: []string{"monthly", "quarterly", "biannual", "annual"}},
			&core.SelectField{Name: "class", Required: true, MaxSelect: 1, Values: []string{"economy", "business", "first"}},
			&core.DateField{Name: "valid_from"},
			&core.DateField{Name: "valid_to"},
			&core.SelectField{Name: "status", Required: true, MaxSelect: 1, Values: []string{"Pending", "Active", "Expired", "Cancelled"}},
			&core.NumberField{Name: "cost"},
			&core.TextField{Name: "comments"},
			&core.TextField{Name: "renewed_from"},
			&core.DateField{Name: "cancelled_at"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_season_passes_user_id", false, "user_id", "")
		collection.AddIndex("idx_season_passes_status", false, "status", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("season_passes")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
