package dto

import (
	"time"

	"github.com/kadro-api/internal/importer"
)

// CreatePositionRequest - запрос на создание должности центральной организации
type CreatePositionRequest struct {
	Name                string  `json:"name" validate:"required,min=1,max=200"`
	Department          string  `json:"department" validate:"required,min=1,max=200"`
	DutyLocation        string  `json:"duty_location" validate:"max=200"`
	Status              string  `json:"status" validate:"required,oneof=Asıl Vekalet Yürütme Boş"`
	OriginalTitle       *string `json:"original_title" validate:"omitempty,max=200"`
	ReportsTo           *string `json:"reports_to" validate:"omitempty,max=36"`
	AssignedPersonnelID *string `json:"assigned_personnel_id" validate:"omitempty,max=36"`
	StartDate           *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdatePositionRequest - запрос на обновление должности.
// Пустая строка в reports_to или assigned_personnel_id снимает ссылку.
type UpdatePositionRequest struct {
	Name                *string `json:"name" validate:"omitempty,min=1,max=200"`
	Department          *string `json:"department" validate:"omitempty,min=1,max=200"`
	DutyLocation        *string `json:"duty_location" validate:"omitempty,max=200"`
	Status              *string `json:"status" validate:"omitempty,oneof=Asıl Vekalet Yürütme Boş"`
	OriginalTitle       *string `json:"original_title" validate:"omitempty,max=200"`
	ReportsTo           *string `json:"reports_to" validate:"omitempty,max=36"`
	AssignedPersonnelID *string `json:"assigned_personnel_id" validate:"omitempty,max=36"`
	StartDate           *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

// CreateTasraPositionRequest - запрос на создание провинциальной должности
type CreateTasraPositionRequest struct {
	Name                  string  `json:"name" validate:"required,min=1,max=200"`
	Unit                  string  `json:"unit" validate:"required,min=1,max=200"`
	DutyLocation          string  `json:"duty_location" validate:"max=200"`
	Status                string  `json:"status" validate:"required,oneof=Asıl Vekalet Yürütme Boş"`
	OriginalTitle         *string `json:"original_title" validate:"omitempty,max=200"`
	ActingAuthority       *string `json:"acting_authority" validate:"omitempty,max=200"`
	ReceivesProxyPay      bool    `json:"receives_proxy_pay"`
	HasDelegatedAuthority bool    `json:"has_delegated_authority"`
	AssignedPersonnelID   *string `json:"assigned_personnel_id" validate:"omitempty,max=36"`
	StartDate             *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateTasraPositionRequest - запрос на обновление провинциальной должности
type UpdateTasraPositionRequest struct {
	Name                  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Unit                  *string `json:"unit" validate:"omitempty,min=1,max=200"`
	DutyLocation          *string `json:"duty_location" validate:"omitempty,max=200"`
	Status                *string `json:"status" validate:"omitempty,oneof=Asıl Vekalet Yürütme Boş"`
	OriginalTitle         *string `json:"original_title" validate:"omitempty,max=200"`
	ActingAuthority       *string `json:"acting_authority" validate:"omitempty,max=200"`
	ReceivesProxyPay      *bool   `json:"receives_proxy_pay"`
	HasDelegatedAuthority *bool   `json:"has_delegated_authority"`
	AssignedPersonnelID   *string `json:"assigned_personnel_id" validate:"omitempty,max=36"`
	StartDate             *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

// CreatePersonnelRequest - запрос на создание сотрудника
type CreatePersonnelRequest struct {
	Organization   string  `json:"organization" validate:"required,oneof=merkez tasra"`
	FirstName      string  `json:"first_name" validate:"required,min=1,max=100"`
	LastName       string  `json:"last_name" validate:"required,min=1,max=100"`
	Unvan          *string `json:"unvan" validate:"omitempty,max=200"`
	RegistryNumber string  `json:"registry_number" validate:"required,min=1,max=50"`
	Status         string  `json:"status" validate:"required,oneof=Memur Sözleşmeli"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone" validate:"omitempty,max=30"`
	PhotoURL       *string `json:"photo_url" validate:"omitempty,url"`
	DateOfBirth    *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

// PersonnelSummary - краткие данные сотрудника внутри ответа о должности
type PersonnelSummary struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	RegistryNumber string `json:"registry_number"`
}

// PositionResponse - ответ с данными должности
type PositionResponse struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	Department          string            `json:"department"`
	DutyLocation        string            `json:"duty_location"`
	Status              string            `json:"status"`
	OriginalTitle       *string           `json:"original_title"`
	ReportsTo           *string           `json:"reports_to"`
	AssignedPersonnelID *string           `json:"assigned_personnel_id"`
	StartDate           *string           `json:"start_date"`
	Holder              *PersonnelSummary `json:"holder,omitempty"`
	LastModifiedBy      string            `json:"last_modified_by"`
	LastModifiedAt      time.Time         `json:"last_modified_at"`
}

// TreeNodeResponse - узел организационной схемы
type TreeNodeResponse struct {
	PositionResponse
	Children []TreeNodeResponse `json:"children,omitempty"`
}

// TasraPositionResponse - ответ с данными провинциальной должности
type TasraPositionResponse struct {
	ID                    string            `json:"id"`
	Name                  string            `json:"name"`
	Unit                  string            `json:"unit"`
	DutyLocation          string            `json:"duty_location"`
	Status                string            `json:"status"`
	OriginalTitle         *string           `json:"original_title"`
	ActingAuthority       *string           `json:"acting_authority"`
	ReceivesProxyPay      bool              `json:"receives_proxy_pay"`
	HasDelegatedAuthority bool              `json:"has_delegated_authority"`
	AssignedPersonnelID   *string           `json:"assigned_personnel_id"`
	StartDate             *string           `json:"start_date"`
	Holder                *PersonnelSummary `json:"holder,omitempty"`
	LastModifiedBy        string            `json:"last_modified_by"`
	LastModifiedAt        time.Time         `json:"last_modified_at"`
}

// PrimaryPositionSummary - основная должность сотрудника
type PrimaryPositionSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Department string `json:"department"`
}

// PersonnelResponse - ответ с данными сотрудника
type PersonnelResponse struct {
	ID              string                  `json:"id"`
	Organization    string                  `json:"organization"`
	FirstName       string                  `json:"first_name"`
	LastName        string                  `json:"last_name"`
	Unvan           *string                 `json:"unvan"`
	RegistryNumber  string                  `json:"registry_number"`
	Status          string                  `json:"status"`
	Email           *string                 `json:"email"`
	Phone           *string                 `json:"phone"`
	PhotoURL        *string                 `json:"photo_url"`
	DateOfBirth     *string                 `json:"date_of_birth"`
	PrimaryPosition *PrimaryPositionSummary `json:"primary_position,omitempty"`
	LastModifiedBy  string                  `json:"last_modified_by"`
	LastModifiedAt  time.Time               `json:"last_modified_at"`
}

// ImportResponse - итог импорта файла
type ImportResponse struct {
	Kind string `json:"kind"`
	importer.Report
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
