package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("complaints")

		collection.Fields.Add(
			&core.TextField{Name: "user_id", Required: true},
			&core.EmailField{Name: "user_email"},
			&core.TextField{Name: "type", Required: true},
			&core.TextField{Name: "subject", Required: true},
			&core.TextField{Name: "description", Required: true},
			&core.TextField{Name: "contact_info"},
			&core.SelectField{Name: "status", Required: true, MaxSelect: 1, Values: []string{"Pending", "In Progress", "Resolved", "Rejected"}},
			&core.TextField{Name: "response"},
			&core.TextField{Name: "admin_id"},
			&core.JSONField{Name: "conversation", MaxSize: 1 << 20},
			&core.DateField{Name: "resolved_at"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_complaints_user_id", false, "user_id", "")
		collection.AddIndex("idx_complaints_status", false, "status", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("complaints")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
