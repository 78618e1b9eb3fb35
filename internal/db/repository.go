package db

// Repository is the CRUD contract shared by all stores. Single-row lookups
// report absence through the bool result, never through an error; Delete
// reports whether a row was actually removed. Domain-specific queries live on
// the concrete repository types.
type Repository[T any, ID comparable] interface {
	FindByID(id ID) (T, bool, error)
	FindAll() ([]T, error)
	Save(entity *T) error
	Update(id ID, entity *T) error
	Delete(id ID) (bool, error)
	Exists(id ID) (bool, error)
}
