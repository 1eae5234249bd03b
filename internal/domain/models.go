package domain

import (
	"strings"
	"time"
)

// Organization - пространство имён персонала и должностей
type Organization string

const (
	OrgMerkez Organization = "merkez"
	OrgTasra  Organization = "tasra"
)

// Valid сообщает, известна ли организация
func (o Organization) Valid() bool {
	return o == OrgMerkez || o == OrgTasra
}

// PositionStatus - статус замещения должности
type PositionStatus string

const (
	StatusPermanent PositionStatus = "Asıl"
	StatusProxy     PositionStatus = "Vekalet"
	StatusDelegated PositionStatus = "Yürütme"
	StatusVacant    PositionStatus = "Boş"
)

// PositionStatuses перечисляет допустимые статусы в порядке отображения
var PositionStatuses = []PositionStatus{StatusPermanent, StatusProxy, StatusDelegated, StatusVacant}

// IsActing сообщает, что должность замещается временно (замещение или исполнение обязанностей)
func (s PositionStatus) IsActing() bool {
	return s == StatusProxy || s == StatusDelegated
}

// PersonnelStatus - статус занятости сотрудника
type PersonnelStatus string

const (
	PersonnelCivilServant PersonnelStatus = "Memur"
	PersonnelContracted   PersonnelStatus = "Sözleşmeli"
)

// PersonnelStatuses перечисляет допустимые статусы сотрудника
var PersonnelStatuses = []PersonnelStatus{PersonnelCivilServant, PersonnelContracted}

// Position представляет должность центральной организации
type Position struct {
	ID                  string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name                string         `json:"name" gorm:"type:varchar(200);not null"`
	Department          string         `json:"department" gorm:"type:varchar(200);not null"`
	DutyLocation        string         `json:"duty_location" gorm:"type:varchar(200);not null;default:''"`
	OriginalTitle       *string        `json:"original_title" gorm:"type:varchar(200)"`
	Status              PositionStatus `json:"status" gorm:"type:varchar(20);not null"`
	ReportsTo           *string        `json:"reports_to" gorm:"type:varchar(36);index"`
	AssignedPersonnelID *string        `json:"assigned_personnel_id" gorm:"type:varchar(36);index"`
	StartDate           *time.Time     `json:"start_date" gorm:"type:date"`
	LastModifiedBy      string         `json:"last_modified_by" gorm:"type:varchar(200)"`
	LastModifiedAt      time.Time      `json:"last_modified_at"`
}

// TableName задаёт имя таблицы для GORM
func (Position) TableName() string {
	return "positions"
}

// TasraPosition представляет должность провинциальной организации (без иерархии)
type TasraPosition struct {
	ID                    string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name                  string         `json:"name" gorm:"type:varchar(200);not null"`
	Unit                  string         `json:"unit" gorm:"type:varchar(200);not null"`
	DutyLocation          string         `json:"duty_location" gorm:"type:varchar(200);not null;default:''"`
	OriginalTitle         *string        `json:"original_title" gorm:"type:varchar(200)"`
	Status                PositionStatus `json:"status" gorm:"type:varchar(20);not null"`
	ActingAuthority       *string        `json:"acting_authority" gorm:"type:varchar(200)"`
	ReceivesProxyPay      bool           `json:"receives_proxy_pay" gorm:"not null;default:false"`
	HasDelegatedAuthority bool           `json:"has_delegated_authority" gorm:"not null;default:false"`
	AssignedPersonnelID   *string        `json:"assigned_personnel_id" gorm:"type:varchar(36);index"`
	StartDate             *time.Time     `json:"start_date" gorm:"type:date"`
	LastModifiedBy        string         `json:"last_modified_by" gorm:"type:varchar(200)"`
	LastModifiedAt        time.Time      `json:"last_modified_at"`
}

// TableName задаёт имя таблицы для GORM
func (TasraPosition) TableName() string {
	return "tasra_positions"
}

// Personnel представляет сотрудника
type Personnel struct {
	ID             string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Organization   Organization    `json:"organization" gorm:"type:varchar(10);not null;uniqueIndex:idx_personnel_registry"`
	FirstName      string          `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName       string          `json:"last_name" gorm:"type:varchar(100);not null"`
	Unvan          *string         `json:"unvan" gorm:"type:varchar(200)"`
	RegistryNumber string          `json:"registry_number" gorm:"type:varchar(50);not null;uniqueIndex:idx_personnel_registry"`
	Status         PersonnelStatus `json:"status" gorm:"type:varchar(20);not null"`
	PhotoURL       *string         `json:"photo_url" gorm:"type:text"`
	Email          *string         `json:"email" gorm:"type:varchar(200)"`
	Phone          *string         `json:"phone" gorm:"type:varchar(50)"`
	DateOfBirth    *time.Time      `json:"date_of_birth" gorm:"type:date"`
	LastModifiedBy string          `json:"last_modified_by" gorm:"type:varchar(200)"`
	LastModifiedAt time.Time       `json:"last_modified_at"`
}

// TableName задаёт имя таблицы для GORM
func (Personnel) TableName() string {
	return "personnel"
}

// FullName возвращает имя и фамилию через пробел
func (p *Personnel) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
