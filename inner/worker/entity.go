package worker

import (
	"database/sql"
	"slices"
	"time"

	"github.com/lib/pq"
)

const (
	// базовая роль есть у каждого работника, в базе она не хранится
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"

	BirthdateLayout = "2006-01-02"
)

type Entity struct {
	Id          int64          `db:"id"`
	Name        string         `db:"name"`
	Surname     string         `db:"surname"`
	Email       string         `db:"email"`
	Password    string         `db:"password"`
	Birthdate   time.Time      `db:"birthdate"`
	Pesel       string         `db:"pesel"`
	GenderId    sql.NullInt64  `db:"gender_id"`
	GenderName  sql.NullString `db:"gender_name"`
	StoredRoles pq.StringArray `db:"roles"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// Roles возвращает сохранённые роли и базовую ROLE_USER без повторов
func (e Entity) Roles() []string {
	roles := make([]string, 0, len(e.StoredRoles)+1)
	for _, role := range append([]string(e.StoredRoles), RoleUser) {
		if !slices.Contains(roles, role) {
			roles = append(roles, role)
		}
	}
	return roles
}

// группа полей "list"
func (e Entity) toListResponse() ListResponse {
	return ListResponse{
		Id:             e.Id,
		UpdateResponse: e.toUpdateResponse(),
	}
}

// группа полей "update" (без id)
func (e Entity) toUpdateResponse() UpdateResponse {
	return UpdateResponse{
		Name:      e.Name,
		Surname:   e.Surname,
		Email:     e.Email,
		Password:  e.Password,
		Birthdate: e.Birthdate.Format(BirthdateLayout),
		Pesel:     e.Pesel,
		Gender:    e.GenderName.String,
		Roles:     e.Roles(),
	}
}

// Payload тело запросов на создание и изменение работника
type Payload struct {
	Name       string `json:"name" validate:"required,max=255"`
	Surname    string `json:"surname" validate:"required,max=255"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Password   string `json:"password"`
	Repassword string `json:"repassword"`
	Birthdate  string `json:"birthdate" validate:"required,datetime=2006-01-02"`
	// pesel и gender проверяются правилами ValidationService, а не тегами
	Pesel  string `json:"pesel"`
	Gender string `json:"gender"`
} // @name WorkerPayload

func (p Payload) ParseBirthdate() (time.Time, error) {
	return time.Parse(BirthdateLayout, p.Birthdate)
}

type UpdateResponse struct {
	Name      string   `json:"name"`
	Surname   string   `json:"surname"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Birthdate string   `json:"birthdate"`
	Pesel     string   `json:"pesel"`
	Gender    string   `json:"gender"`
	Roles     []string `json:"roles"`
} // @name WorkerUpdate

type ListResponse struct {
	Id int64 `json:"id"`
	UpdateResponse
} // @name WorkerListItem
