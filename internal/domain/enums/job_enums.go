package enums

type ExperienceLevel string

const (
	ExperienceJunior ExperienceLevel = "Junior"
	ExperienceMedior ExperienceLevel = "Medior"
	ExperienceSenior ExperienceLevel = "Senior"
)

func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceJunior, ExperienceMedior, ExperienceSenior:
		return true
	}
	return false
}

type RemoteOption string

const (
	RemoteOptionRemote RemoteOption = "Remote"
	RemoteOptionHybrid RemoteOption = "Hybrid"
	RemoteOptionOnSite RemoteOption = "On-site"
)

func (r RemoteOption) Valid() bool {
	switch r {
	case RemoteOptionRemote, RemoteOptionHybrid, RemoteOptionOnSite:
		return true
	}
	return false
}

type RoleType string

const (
	RoleTypeRegular RoleType = "regular"
	RoleTypeCompany RoleType = "company"
)

func (r RoleType) Valid() bool {
	return r == RoleTypeRegular || r == RoleTypeCompany
}
