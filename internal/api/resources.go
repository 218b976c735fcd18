package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/cultivar-dev/cultivar/internal/entity"
)

// Collection paths.
var (
	pathUsers    = entity.KindUser.Path()    //nolint:gochecknoglobals // Derived constant.
	pathRoles    = entity.KindRole.Path()    //nolint:gochecknoglobals // Derived constant.
	pathGenetics = entity.KindGenetic.Path() //nolint:gochecknoglobals // Derived constant.
	pathPlants   = entity.KindPlant.Path()   //nolint:gochecknoglobals // Derived constant.
)

const pathHealthCheck = "health_check"

// ListUsers returns the users matching query. An empty query lists all.
func (c *Client) ListUsers(ctx context.Context, query string, opts ...ListOption) ([]entity.User, error) {
	return list[entity.User](ctx, c, pathUsers, query, opts)
}

// ListRoles returns the roles matching query.
func (c *Client) ListRoles(ctx context.Context, query string, opts ...ListOption) ([]entity.Role, error) {
	return list[entity.Role](ctx, c, pathRoles, query, opts)
}

// ListGenetics returns the genetics matching query.
func (c *Client) ListGenetics(ctx context.Context, query string, opts ...ListOption) ([]entity.Genetic, error) {
	return list[entity.Genetic](ctx, c, pathGenetics, query, opts)
}

// ListPlants returns the plants matching query.
func (c *Client) ListPlants(ctx context.Context, query string, opts ...ListOption) ([]entity.Plant, error) {
	return list[entity.Plant](ctx, c, pathPlants, query, opts)
}

// DeleteUser deletes the user with id.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.remove(ctx, pathUsers, id)
}

// DeleteRole deletes the role with id.
func (c *Client) DeleteRole(ctx context.Context, id int) error {
	return c.remove(ctx, pathRoles, strconv.Itoa(id))
}

// DeleteGenetic deletes the genetic with id.
func (c *Client) DeleteGenetic(ctx context.Context, id string) error {
	return c.remove(ctx, pathGenetics, id)
}

// DeletePlant deletes the plant with id.
func (c *Client) DeletePlant(ctx context.Context, id string) error {
	return c.remove(ctx, pathPlants, id)
}

// CreateUser validates and creates a user.
func (c *Client) CreateUser(ctx context.Context, u entity.NewUser) (entity.User, error) {
	if err := u.Validate(); err != nil {
		return entity.User{}, err
	}
	return create[entity.User](ctx, c, pathUsers, u)
}

// CreateRole validates and creates a role.
func (c *Client) CreateRole(ctx context.Context, r entity.NewRole) (entity.Role, error) {
	if err := r.Validate(); err != nil {
		return entity.Role{}, err
	}
	return create[entity.Role](ctx, c, pathRoles, r)
}

// CreateGenetic validates and creates a genetic.
func (c *Client) CreateGenetic(ctx context.Context, g entity.NewGenetic) (entity.Genetic, error) {
	if err := g.Validate(); err != nil {
		return entity.Genetic{}, err
	}
	return create[entity.Genetic](ctx, c, pathGenetics, g)
}

// CreatePlant validates and creates a plant.
func (c *Client) CreatePlant(ctx context.Context, p entity.NewPlant) (entity.Plant, error) {
	if err := p.Validate(); err != nil {
		return entity.Plant{}, err
	}
	return create[entity.Plant](ctx, c, pathPlants, p)
}

// GeneratePlantName asks the backend for the next free plant name of a genetic.
// The backend answers with plain text.
func (c *Client) GeneratePlantName(ctx context.Context, geneticID string) (string, error) {
	if err := entity.ValidateUUID(geneticID); err != nil {
		return "", err
	}
	data, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   pathPlants + "/generatePlantName/" + geneticID,
	})
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(string(data)), `"`), nil
}

// HealthCheck reports whether the backend is reachable. It needs no session.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.do(ctx, request{method: http.MethodGet, path: pathHealthCheck, noAuth: true})
	return err
}
