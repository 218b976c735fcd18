package api

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/cultivar-dev/cultivar/internal/entity"
)

// Overview summarises the backend's collections.
type Overview struct {
	Users         int                       `json:"users"         yaml:"users"`
	Roles         int                       `json:"roles"         yaml:"roles"`
	Genetics      int                       `json:"genetics"      yaml:"genetics"`
	Plants        int                       `json:"plants"        yaml:"plants"`
	PlantsByStage map[entity.PlantStage]int `json:"plantsByStage" yaml:"plantsByStage"`
}

// Count returns the number of records of kind.
func (o Overview) Count(kind entity.Kind) int {
	switch kind {
	case entity.KindUser:
		return o.Users
	case entity.KindRole:
		return o.Roles
	case entity.KindGenetic:
		return o.Genetics
	case entity.KindPlant:
		return o.Plants
	default:
		return 0
	}
}

// Overview fetches all four collections concurrently. The first failure
// cancels the remaining fetches and is returned.
func (c *Client) Overview(ctx context.Context) (Overview, error) {
	var (
		users    []entity.User
		roles    []entity.Role
		genetics []entity.Genetic
		plants   []entity.Plant
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = c.ListUsers(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		roles, err = c.ListRoles(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		genetics, err = c.ListGenetics(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		plants, err = c.ListPlants(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	byStage := make(map[entity.PlantStage]int)
	for _, p := range plants {
		if p.Stage != "" {
			byStage[p.Stage]++
		}
	}

	return Overview{
		Users:         len(users),
		Roles:         len(roles),
		Genetics:      len(genetics),
		Plants:        len(plants),
		PlantsByStage: byStage,
	}, nil
}
