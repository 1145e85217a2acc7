package restclient

import (
	"context"

	"mini-admin/internal/domain"
)

// Trainings implements domain.TrainingRepository over /trainings.
type Trainings struct {
	c *Client
}

var _ domain.TrainingRepository = (*Trainings)(nil)

// Trainings returns the training resource.
func (c *Client) Trainings() *Trainings { return &Trainings{c: c} }

func (t *Trainings) ListAll(ctx context.Context) ([]domain.Training, error) {
	var rows []domain.Training
	if _, err := t.c.getJSON(ctx, "/trainings", nil, &rows); err != nil {
		return nil, toDomainError(err, "training", 0)
	}
	return rows, nil
}
