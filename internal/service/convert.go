package service

import (
	"github.com/mmynk/groupledger/internal/calculator"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/pkg/api"
)

func toAPIGroup(g *models.Group) *api.Group {
	return &api.Group{ID: g.ID, Name: g.Name, CreatedAt: g.CreatedAt}
}

func toAPIPerson(p *models.Person) *api.Person {
	return &api.Person{ID: p.ID, GroupID: p.GroupID, Name: p.Name, CreatedAt: p.CreatedAt}
}

func toAPIPersons(persons []*models.Person) []*api.Person {
	out := make([]*api.Person, len(persons))
	for i, p := range persons {
		out[i] = toAPIPerson(p)
	}
	return out
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:        e.ID,
		GroupID:   e.GroupID,
		Name:      e.Name,
		Amount:    e.Amount.String(),
		PayerID:   e.PayerID,
		Debtors:   e.Debtors,
		Weights:   e.Weights,
		CreatedAt: e.CreatedAt,
	}
}

func toAPISettlement(s *models.Settlement) *api.Settlement {
	return &api.Settlement{
		ID:           s.ID,
		GroupID:      s.GroupID,
		FromPersonID: s.FromPersonID,
		ToPersonID:   s.ToPersonID,
		Amount:       s.Amount.String(),
		Note:         s.Note,
		CreatedAt:    s.CreatedAt,
	}
}

func toAPIBalances(summary *calculator.Summary) *api.GetGroupBalancesResponse {
	resp := &api.GetGroupBalancesResponse{
		Balances:  make([]*api.PersonBalance, 0, len(summary.Sheet)),
		Transfers: make([]*api.Transfer, 0, len(summary.Transfers)),
	}
	for _, id := range summary.Sheet.PersonIDs() {
		b := summary.Sheet[id]
		resp.Balances = append(resp.Balances, &api.PersonBalance{
			PersonID: id,
			Name:     b.Name,
			Paid:     b.Paid.String(),
			Owes:     b.Owes.String(),
			Balance:  b.Balance.String(),
		})
	}
	for _, t := range summary.Transfers {
		resp.Transfers = append(resp.Transfers, &api.Transfer{
			FromPersonID: t.From,
			FromName:     summary.Sheet[t.From].Name,
			ToPersonID:   t.To,
			ToName:       summary.Sheet[t.To].Name,
			Amount:       t.Amount.String(),
		})
	}
	return resp
}
