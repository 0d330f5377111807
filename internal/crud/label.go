package crud

// Label: человекочитаемое имя сущности для сообщений API.
type Label struct {
	Name     string // "Продукт", "Категория персонала"
	Feminine bool   // согласование: "найден" / "найдена"

	// Необязательные переопределения текстов.
	ConflictText string
	// Текст ошибки для пустого списка. Пусто, если пустой список допустим.
	Empty string
}

func (l Label) suffix() string {
	if l.Feminine {
		return "а"
	}
	return ""
}

func (l Label) Conflict() string {
	if l.ConflictText != "" {
		return l.ConflictText
	}
	return l.Name + " уже существует"
}

func (l Label) NotFound() string { return l.Name + " не найден" + l.suffix() }

func (l Label) Updated() string { return l.Name + " успешно изменен" + l.suffix() }

func (l Label) Deleted() string { return l.Name + " успешно удален" + l.suffix() }

// RequireRows сообщает, должен ли список сущностей быть непустым.
func (l Label) RequireRows() bool { return l.Empty != "" }
