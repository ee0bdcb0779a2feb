package domain

// Action is an operation a principal may attempt on a subject type.
type Action string

const (
	ActionManage Action = "manage" // covers every other action
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Subject is the kind of entity an action targets.
type Subject string

const (
	SubjectAll        Subject = "all"
	SubjectUser       Subject = "user"
	SubjectRecipe     Subject = "recipe"
	SubjectTag        Subject = "tag"
	SubjectIngredient Subject = "ingredient"
)

type grant struct {
	action  Action
	subject Subject
}

// grantsByRole is the fixed, data-driven rule table. Admins manage
// everything; plain users may only create and read tags and ingredients.
// Recipe and user access for plain users is decided by the ownership rules
// instead, so those subjects carry no default grants here.
var grantsByRole = map[string][]grant{
	RoleAdmin: {
		{ActionManage, SubjectAll},
	},
	RoleUser: {
		{ActionCreate, SubjectTag},
		{ActionRead, SubjectTag},
		{ActionCreate, SubjectIngredient},
		{ActionRead, SubjectIngredient},
	},
}

// Ability is the capability set computed for one principal.
type Ability struct {
	grants []grant
}

// NewAbility builds the ability for a principal. Unknown roles receive the
// plain-user grant set, so an unrecognised role never widens access.
func NewAbility(p Principal) Ability {
	grants, ok := grantsByRole[p.Role]
	if !ok {
		grants = grantsByRole[RoleUser]
	}
	return Ability{grants: grants}
}

// Can reports whether the ability allows action on subject.
func (a Ability) Can(action Action, subject Subject) bool {
	for _, g := range a.grants {
		if g.subject != subject && g.subject != SubjectAll {
			continue
		}
		if g.action == action || g.action == ActionManage {
			return true
		}
	}
	return false
}
