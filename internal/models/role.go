package models

// Module is a named platform area that permissions attach to.
type Module struct {
	BaseModel
	ModuleName        string `gorm:"not null" json:"moduleName"`
	ModuleDescription string `json:"moduleDescription"`
	IsDeleted         bool   `gorm:"default:false" json:"isDeleted"`

	Permissions []Permission `gorm:"foreignKey:ModuleID" json:"permissions,omitempty"`
}

// Permission is a single capability scoped to a module. Titles are
// stored upper-cased and must be unique platform-wide.
type Permission struct {
	BaseModel
	PermissionTitle string `gorm:"not null;uniqueIndex" json:"permissionTitle"`
	IsDeleted       bool   `gorm:"default:false" json:"isDeleted"`

	ModuleID uint    `gorm:"not null;index" json:"moduleId"`
	Module   *Module `gorm:"foreignKey:ModuleID" json:"-"`
}

// Role groups permissions for assignment.
type Role struct {
	BaseModel
	RoleName  string `gorm:"not null" json:"roleName"`
	IsDeleted bool   `gorm:"default:false" json:"isDeleted"`

	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`
}
