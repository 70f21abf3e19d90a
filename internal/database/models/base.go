package models

// Default values applied when a create payload omits the field
const (
	DefaultEntityStatus = "active"
	DefaultTaskStatus   = "pending"
)

// All returns the managed models in creation order (parents first)
func All() []interface{} {
	return []interface{}{
		&Entity{},
		&Account{},
		&Task{},
		&Document{},
	}
}
