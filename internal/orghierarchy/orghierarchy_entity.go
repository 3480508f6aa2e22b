package orghierarchy

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rows of the org chart. They are owned by the employee directory; this
// package only reads them.

type EmployeeRow struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;index"`
	AreaID     *uuid.UUID `gorm:"type:uuid"`
	NationalID string     `gorm:"size:32;index"`
	FullName   string
	Email      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (EmployeeRow) TableName() string { return "employees" }

type AreaRow struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;index"`
	DepartmentID uuid.UUID  `gorm:"type:uuid;not null"`
	SupervisorID *uuid.UUID `gorm:"type:uuid"`
	Name         string
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (AreaRow) TableName() string { return "areas" }

type DepartmentRow struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID      `gorm:"type:uuid;index"`
	Name      string         `gorm:"size:255;not null"`
	ManagerID *uuid.UUID     `gorm:"column:manager_id;type:uuid"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (DepartmentRow) TableName() string { return "departments" }

type Employee struct {
	ID         string `json:"id"`
	NationalID string `json:"national_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
}

type AreaInfo struct {
	AreaID       string `json:"area_id"`
	DepartmentID string `json:"department_id"`
	SupervisorID string `json:"supervisor_id"`
}
