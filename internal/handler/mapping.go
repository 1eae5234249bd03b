package handler

import (
	"time"

	"github.com/kadro-api/internal/domain"
	"github.com/kadro-api/internal/dto"
	"github.com/kadro-api/internal/orgchart"
)

const dateLayout = "2006-01-02"

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func toPersonnelSummary(p *domain.Personnel) *dto.PersonnelSummary {
	if p == nil {
		return nil
	}
	return &dto.PersonnelSummary{
		ID:             p.ID,
		FullName:       p.FullName(),
		RegistryNumber: p.RegistryNumber,
	}
}

func toPositionResponse(p *domain.Position, holder *domain.Personnel) dto.PositionResponse {
	return dto.PositionResponse{
		ID:                  p.ID,
		Name:                p.Name,
		Department:          p.Department,
		DutyLocation:        p.DutyLocation,
		Status:              string(p.Status),
		OriginalTitle:       p.OriginalTitle,
		ReportsTo:           p.ReportsTo,
		AssignedPersonnelID: p.AssignedPersonnelID,
		StartDate:           formatDate(p.StartDate),
		Holder:              toPersonnelSummary(holder),
		LastModifiedBy:      p.LastModifiedBy,
		LastModifiedAt:      p.LastModifiedAt,
	}
}

func toTreeResponse(nodes []*orgchart.Node) []dto.TreeNodeResponse {
	resp := make([]dto.TreeNodeResponse, len(nodes))
	for i, n := range nodes {
		resp[i] = dto.TreeNodeResponse{
			PositionResponse: toPositionResponse(&n.Position, n.Holder),
		}
		if len(n.Children) > 0 {
			resp[i].Children = toTreeResponse(n.Children)
		}
	}
	return resp
}

func toTasraPositionResponse(p *domain.TasraPosition, holder *domain.Personnel) dto.TasraPositionResponse {
	return dto.TasraPositionResponse{
		ID:                    p.ID,
		Name:                  p.Name,
		Unit:                  p.Unit,
		DutyLocation:          p.DutyLocation,
		Status:                string(p.Status),
		OriginalTitle:         p.OriginalTitle,
		ActingAuthority:       p.ActingAuthority,
		ReceivesProxyPay:      p.ReceivesProxyPay,
		HasDelegatedAuthority: p.HasDelegatedAuthority,
		AssignedPersonnelID:   p.AssignedPersonnelID,
		StartDate:             formatDate(p.StartDate),
		Holder:                toPersonnelSummary(holder),
		LastModifiedBy:        p.LastModifiedBy,
		LastModifiedAt:        p.LastModifiedAt,
	}
}

func toPersonnelResponse(p *domain.Personnel, primary *orgchart.Entry) dto.PersonnelResponse {
	resp := dto.PersonnelResponse{
		ID:             p.ID,
		Organization:   string(p.Organization),
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Unvan:          p.Unvan,
		RegistryNumber: p.RegistryNumber,
		Status:         string(p.Status),
		Email:          p.Email,
		Phone:          p.Phone,
		PhotoURL:       p.PhotoURL,
		DateOfBirth:    formatDate(p.DateOfBirth),
		LastModifiedBy: p.LastModifiedBy,
		LastModifiedAt: p.LastModifiedAt,
	}
	if primary != nil {
		resp.PrimaryPosition = &dto.PrimaryPositionSummary{
			ID:         primary.ID,
			Title:      primary.Title,
			Department: primary.Department,
		}
	}
	return resp
}
