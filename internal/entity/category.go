package entity

type Category struct {
	ID       uint
	Name     string
	ParentID *uint
}
