package gender

// допустимые названия пола (закрытый справочник)
const (
	Man   = "Man"
	Woman = "Woman"
)

// Names возвращает справочник в порядке заполнения миграцией
func Names() []string {
	return []string{Man, Woman}
}

type Entity struct {
	Id   int64  `db:"id"`
	Name string `db:"name"`
}

type Response struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
} // @name Gender

func (e *Entity) toResponse() Response {
	return Response{
		Id:   e.Id,
		Name: e.Name,
	}
}
