package domain

// Store identifies one configured store profile. Credentials stay in the
// config registry; the pipeline itself has no knowledge of specific stores.
type Store struct {
	Name string
}

// StoreStatus is the result of a connectivity probe against a store.
type StoreStatus struct {
	Store     Store
	Connected bool
	ShopName  string
	Error     string
}
