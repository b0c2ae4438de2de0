package model

// Brand, Timeline, Category 는 아카이브 분류용 조회 테이블이다

type Brand struct {
	ID   uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;type:varchar(50);not null;uniqueIndex"`
}

func (*Brand) TableName() string {
	return "brand"
}

type Timeline struct {
	ID   uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;type:varchar(50);not null;uniqueIndex"`
}

func (*Timeline) TableName() string {
	return "timeline"
}

type Category struct {
	ID   uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;type:varchar(50);not null;uniqueIndex"`
}

func (*Category) TableName() string {
	return "category"
}
