package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/goodplates/recipes-api/internal/core/domain"
	"github.com/goodplates/recipes-api/internal/core/ports"
	"github.com/goodplates/recipes-api/internal/pkg/paginate"
)

// In-memory fakes shared by the service tests. They keep real
// back-reference arrays so the tests can verify both sides of every
// relation after an operation.

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// --- transaction runner ---

// memTx snapshots every fake repository before running the callback and
// restores the snapshots when it fails, mirroring a session rollback. Tests
// can therefore assert that a mid-transaction failure leaves no half-applied
// back-references behind.
type memTx struct {
	calls       int
	users       *memUserRepo
	tags        *memTagRepo
	ingredients *memIngredientRepo
	recipes     *memRecipeRepo
}

func (m *memTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	users := m.users.snapshot()
	tags := m.tags.snapshot()
	ingredients := m.ingredients.snapshot()
	recipes := m.recipes.snapshot()

	if err := fn(ctx); err != nil {
		m.users.restore(users)
		m.tags.restore(tags)
		m.ingredients.restore(ingredients)
		m.recipes.restore(recipes)
		return err
	}
	return nil
}

// --- audit recorder ---

type memAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (m *memAudit) Record(event domain.AuditEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *memAudit) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.events))
	for i, e := range m.events {
		out[i] = e.Action
	}
	return out
}

// --- user repository ---

type memUserRepo struct {
	mu      sync.Mutex
	seq     int
	users   map[string]*domain.User
	pushErr error
	pullErr error
}

func (m *memUserRepo) snapshot() map[string]*domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := make(map[string]*domain.User, len(m.users))
	for id, u := range m.users {
		cp := *u
		cp.Recipes = append([]string(nil), u.Recipes...)
		snap[id] = &cp
	}
	return snap
}

func (m *memUserRepo) restore(snap map[string]*domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = snap
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (m *memUserRepo) add(user *domain.User) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", m.seq)
	}
	if user.Recipes == nil {
		user.Recipes = []string{}
	}
	m.users[user.ID] = user
	return user
}

func (m *memUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	for _, u := range m.users {
		if u.Username == user.Username {
			m.mu.Unlock()
			return nil, fmt.Errorf("username %q: %w", user.Username, domain.ErrConflict)
		}
	}
	m.mu.Unlock()
	return m.add(user), nil
}

func (m *memUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.NewNotFound("user", id)
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.NewNotFound("user", username)
}

func (m *memUserRepo) List(ctx context.Context, window paginate.Window) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memUserRepo) Update(ctx context.Context, id string, delta ports.UserDelta) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.NewNotFound("user", id)
	}
	if delta.Username != nil {
		u.Username = *delta.Username
	}
	if delta.Name != nil {
		u.Name = *delta.Name
	}
	if delta.PasswordHash != nil {
		u.PasswordHash = *delta.PasswordHash
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return domain.NewNotFound("user", id)
	}
	delete(m.users, id)
	return nil
}

func (m *memUserRepo) PushRecipe(ctx context.Context, userID, recipeID string) error {
	if m.pushErr != nil {
		return m.pushErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return domain.NewNotFound("user", userID)
	}
	u.Recipes = append(u.Recipes, recipeID)
	return nil
}

func (m *memUserRepo) PullRecipe(ctx context.Context, userID, recipeID string) error {
	if m.pullErr != nil {
		return m.pullErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return domain.NewNotFound("user", userID)
	}
	u.Recipes = removeString(u.Recipes, recipeID)
	return nil
}

// --- tag repository ---

type memTagRepo struct {
	mu      sync.Mutex
	seq     int
	tags    map[string]*domain.Tag
	pushErr error
	pullErr error
}

func (m *memTagRepo) snapshot() map[string]*domain.Tag {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := make(map[string]*domain.Tag, len(m.tags))
	for id, t := range m.tags {
		cp := *t
		cp.Recipes = append([]string(nil), t.Recipes...)
		snap[id] = &cp
	}
	return snap
}

func (m *memTagRepo) restore(snap map[string]*domain.Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags = snap
}

func newMemTagRepo() *memTagRepo {
	return &memTagRepo{tags: make(map[string]*domain.Tag)}
}

func (m *memTagRepo) add(tag *domain.Tag) *domain.Tag {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if tag.ID == "" {
		tag.ID = fmt.Sprintf("tag-%d", m.seq)
	}
	if tag.Recipes == nil {
		tag.Recipes = []string{}
	}
	m.tags[tag.ID] = tag
	return tag
}

func (m *memTagRepo) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	return m.add(tag), nil
}

func (m *memTagRepo) FindByID(ctx context.Context, id string) (*domain.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tags[id]
	if !ok {
		return nil, domain.NewNotFound("tag", id)
	}
	cp := *t
	return &cp, nil
}

func (m *memTagRepo) List(ctx context.Context, window paginate.Window) ([]*domain.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Tag, 0, len(m.tags))
	for _, t := range m.tags {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memTagRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tags[id]; !ok {
		return domain.NewNotFound("tag", id)
	}
	delete(m.tags, id)
	return nil
}

func (m *memTagRepo) PushRecipe(ctx context.Context, tagID, recipeID string) error {
	if m.pushErr != nil {
		return m.pushErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tags[tagID]
	if !ok {
		return domain.NewNotFound("tag", tagID)
	}
	t.Recipes = append(t.Recipes, recipeID)
	t.Popularity++
	return nil
}

func (m *memTagRepo) PullRecipe(ctx context.Context, tagID, recipeID string) error {
	if m.pullErr != nil {
		return m.pullErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tags[tagID]
	if !ok {
		return domain.NewNotFound("tag", tagID)
	}
	t.Recipes = removeString(t.Recipes, recipeID)
	t.Popularity--
	return nil
}

// --- ingredient repository ---

type memIngredientRepo struct {
	mu          sync.Mutex
	seq         int
	ingredients map[string]*domain.Ingredient
	pushErr     error
	pullErr     error
}

func (m *memIngredientRepo) snapshot() map[string]*domain.Ingredient {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := make(map[string]*domain.Ingredient, len(m.ingredients))
	for id, ing := range m.ingredients {
		cp := *ing
		cp.Recipes = append([]string(nil), ing.Recipes...)
		snap[id] = &cp
	}
	return snap
}

func (m *memIngredientRepo) restore(snap map[string]*domain.Ingredient) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ingredients = snap
}

func newMemIngredientRepo() *memIngredientRepo {
	return &memIngredientRepo{ingredients: make(map[string]*domain.Ingredient)}
}

func (m *memIngredientRepo) add(ing *domain.Ingredient) *domain.Ingredient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if ing.ID == "" {
		ing.ID = fmt.Sprintf("ing-%d", m.seq)
	}
	if ing.Recipes == nil {
		ing.Recipes = []string{}
	}
	m.ingredients[ing.ID] = ing
	return ing
}

func (m *memIngredientRepo) Create(ctx context.Context, ing *domain.Ingredient) (*domain.Ingredient, error) {
	return m.add(ing), nil
}

func (m *memIngredientRepo) FindByID(ctx context.Context, id string) (*domain.Ingredient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ing, ok := m.ingredients[id]
	if !ok {
		return nil, domain.NewNotFound("ingredient", id)
	}
	cp := *ing
	return &cp, nil
}

func (m *memIngredientRepo) List(ctx context.Context, window paginate.Window) ([]*domain.Ingredient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Ingredient, 0, len(m.ingredients))
	for _, ing := range m.ingredients {
		cp := *ing
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memIngredientRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ingredients[id]; !ok {
		return domain.NewNotFound("ingredient", id)
	}
	delete(m.ingredients, id)
	return nil
}

func (m *memIngredientRepo) PushRecipe(ctx context.Context, ingredientID, recipeID string) error {
	if m.pushErr != nil {
		return m.pushErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ing, ok := m.ingredients[ingredientID]
	if !ok {
		return domain.NewNotFound("ingredient", ingredientID)
	}
	ing.Recipes = append(ing.Recipes, recipeID)
	ing.Popularity++
	return nil
}

func (m *memIngredientRepo) PullRecipe(ctx context.Context, ingredientID, recipeID string) error {
	if m.pullErr != nil {
		return m.pullErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ing, ok := m.ingredients[ingredientID]
	if !ok {
		return domain.NewNotFound("ingredient", ingredientID)
	}
	ing.Recipes = removeString(ing.Recipes, recipeID)
	ing.Popularity--
	return nil
}

// --- recipe repository ---

type memRecipeRepo struct {
	mu      sync.Mutex
	seq     int
	recipes map[string]*domain.Recipe
}

func (m *memRecipeRepo) snapshot() map[string]*domain.Recipe {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := make(map[string]*domain.Recipe, len(m.recipes))
	for id, r := range m.recipes {
		cp := *r
		cp.Tags = append([]domain.TagRef(nil), r.Tags...)
		cp.Ingredients = append([]domain.RecipeIngredient(nil), r.Ingredients...)
		cp.PreparationSteps = append([]string(nil), r.PreparationSteps...)
		snap[id] = &cp
	}
	return snap
}

func (m *memRecipeRepo) restore(snap map[string]*domain.Recipe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recipes = snap
}

func newMemRecipeRepo() *memRecipeRepo {
	return &memRecipeRepo{recipes: make(map[string]*domain.Recipe)}
}

func (m *memRecipeRepo) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	cp := *recipe
	cp.ID = fmt.Sprintf("recipe-%d", m.seq)
	m.recipes[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memRecipeRepo) FindByID(ctx context.Context, id string) (*domain.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[id]
	if !ok {
		return nil, domain.NewNotFound("recipe", id)
	}
	cp := *r
	return &cp, nil
}

func (m *memRecipeRepo) List(ctx context.Context, filter ports.ListRecipesFilter) ([]*domain.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Recipe
	for _, r := range m.recipes {
		if filter.OwnerID != "" && r.Owner.ID != filter.OwnerID {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memRecipeRepo) Update(ctx context.Context, id string, delta ports.RecipeDelta) (*domain.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[id]
	if !ok {
		return nil, domain.NewNotFound("recipe", id)
	}
	if delta.Title != nil {
		r.Title = *delta.Title
	}
	if delta.Portions != nil {
		r.Portions = *delta.Portions
	}
	if delta.Description != nil {
		r.Description = *delta.Description
	}
	if delta.PreparationTime != nil {
		r.PreparationTime = *delta.PreparationTime
	}
	if delta.CookingTime != nil {
		r.CookingTime = *delta.CookingTime
	}
	if delta.PreparationSteps != nil {
		r.PreparationSteps = *delta.PreparationSteps
	}
	if delta.Tags != nil {
		r.Tags = *delta.Tags
	}
	if delta.Ingredients != nil {
		r.Ingredients = *delta.Ingredients
	}
	if delta.Owner != nil {
		r.Owner = *delta.Owner
	}
	r.UpdatedAt = time.Now().UTC()
	cp := *r
	return &cp, nil
}

func (m *memRecipeRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recipes[id]; !ok {
		return domain.NewNotFound("recipe", id)
	}
	delete(m.recipes, id)
	return nil
}

func removeString(in []string, s string) []string {
	out := in[:0]
	for _, v := range in {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

// --- denylist ---

type memDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemDenylist() *memDenylist {
	return &memDenylist{revoked: make(map[string]time.Duration)}
}

func (m *memDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ttl > 0 {
		m.revoked[jti] = ttl
	}
	return nil
}

func (m *memDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok, nil
}
