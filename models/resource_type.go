package models

type ResourceType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:name;size:64;uniqueIndex;type:varchar(64)" json:"name"`
}

func (ResourceType) TableName() string { return "types" }
