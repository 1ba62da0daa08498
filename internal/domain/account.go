package domain

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
)

// Account é a conta (loja) dona dos envios
type Account struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Nickname *string       `json:"nickname"`
	Status   AccountStatus `json:"status"`
}

// Label é o nome exibido: o apelido quando existir, senão o nome
func (a Account) Label() string {
	if a.Nickname != nil && *a.Nickname != "" {
		return *a.Nickname
	}
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}
