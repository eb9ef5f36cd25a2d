package model

// Transient shapes for the bulk lesson content import. An ImportPayload lives
// only for the duration of one import: parsed from operator-supplied JSON,
// validated, previewed, then committed or discarded. Persisted state is the
// Module/Lesson/LessonContent rows the ingestion step produces.

type ImportContentType string

const (
	ImportVideo    ImportContentType = "VIDEO"
	ImportArticle  ImportContentType = "ARTICLE"
	ImportExercise ImportContentType = "EXERCISE"
	ImportQuiz     ImportContentType = "QUIZ"
)

type ExerciseDifficulty string

const (
	DifficultyEasy   ExerciseDifficulty = "easy"
	DifficultyMedium ExerciseDifficulty = "medium"
	DifficultyHard   ExerciseDifficulty = "hard"
)

type ExerciseType string

const (
	ExerciseOrdering  ExerciseType = "ordering"
	ExerciseTrueFalse ExerciseType = "true_false"
	ExerciseFillBlank ExerciseType = "fill_blank"
	ExerciseCode      ExerciseType = "code"
	ExerciseText      ExerciseType = "text"
	ExerciseOpen      ExerciseType = "open"
)

// ImportPayloadVersion is the only payload schema version this build accepts.
// A payload without a version field is treated as version 1.
const ImportPayloadVersion = 1

// swagger:model ImportPayload
type ImportPayload struct {
	Version  *int            `json:"version,omitempty"`
	Module   ImportModule    `json:"module"`
	Lesson   ImportLesson    `json:"lesson"`
	Block    ImportBlock     `json:"block"`
	Contents []ImportContent `json:"contents"`
}

type ImportModule struct {
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	CreateIfNotExists bool   `json:"create_if_not_exists"`
}

type ImportLesson struct {
	Title             string `json:"title"`
	Description       string `json:"description,omitempty"`
	Duration          string `json:"duration,omitempty"`
	CreateIfNotExists bool   `json:"create_if_not_exists"`
}

// ImportBlock is an organizational label shown in the preview; it is not
// persisted as its own entity.
type ImportBlock struct {
	Title string `json:"title"`
	Order int    `json:"order"`
}

// ImportContent is a tagged union over the four content kinds, discriminated
// by Type. Only the fields for the declared kind are meaningful; the validator
// enforces which ones are required.
type ImportContent struct {
	Type    ImportContentType `json:"type"`
	Title   string            `json:"title"`
	Order   int               `json:"order"`
	Content string            `json:"content,omitempty"`

	// VIDEO
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
	VideoRef        string `json:"video_ref,omitempty"`

	// EXERCISE
	Answer              string               `json:"answer,omitempty"`
	Difficulty          ExerciseDifficulty   `json:"difficulty,omitempty"`
	ExerciseType        ExerciseType         `json:"exercise_type,omitempty"`
	OrderingItems       []string             `json:"ordering_items,omitempty"`
	TrueFalseStatements []TrueFalseStatement `json:"true_false_statements,omitempty"`
	FillBlankData       *FillBlankData       `json:"fill_blank_data,omitempty"`

	// QUIZ
	Questions []ImportQuizQuestion `json:"questions,omitempty"`
}

type TrueFalseStatement struct {
	Statement string `json:"statement"`
	IsTrue    bool   `json:"is_true"`
}

type FillBlankData struct {
	Text   string   `json:"text"`
	Blanks []string `json:"blanks"`
}

type ImportQuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	// Correct is a zero-based index into Options.
	Correct int `json:"correct"`
}

// ValidationError is one field-level problem; validation accumulates them and
// always completes a full pass over the payload.
// swagger:model ValidationError
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// swagger:model ImportSummary
type ImportSummary struct {
	ModuleName     string `json:"moduleName"`
	LessonTitle    string `json:"lessonTitle"`
	BlockTitle     string `json:"blockTitle"`
	VideoCount     int    `json:"videoCount"`
	ArticleCount   int    `json:"articleCount"`
	ExerciseCount  int    `json:"exerciseCount"`
	QuizCount      int    `json:"quizCount"`
	QuizQuestions  int    `json:"quizQuestions"`
	TotalContents  int    `json:"totalContents"`
	ModuleExists   bool   `json:"moduleExists"`
	LessonExists   bool   `json:"lessonExists"`
}

// swagger:model ImportResult
type ImportResult struct {
	ModuleID        uint     `json:"moduleId"`
	LessonID        uint     `json:"lessonId"`
	ModuleCreated   bool     `json:"moduleCreated"`
	LessonCreated   bool     `json:"lessonCreated"`
	ContentsCreated int      `json:"contentsCreated"`
	Errors          []string `json:"errors,omitempty"`
}

// StoredExercise is the encoded blob an EXERCISE content row keeps in its
// content column.
type StoredExercise struct {
	ExerciseType        ExerciseType         `json:"exercise_type"`
	Difficulty          ExerciseDifficulty   `json:"difficulty"`
	Instruction         string               `json:"instruction"`
	AnswerExplanation   string               `json:"answer_explanation"`
	OrderingItems       []string             `json:"ordering_items,omitempty"`
	TrueFalseStatements []TrueFalseStatement `json:"true_false_statements,omitempty"`
	FillBlankData       *FillBlankData       `json:"fill_blank_data,omitempty"`
}

// StoredQuizOption is one entry of a quiz row's quiz_data column.
type StoredQuizOption struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type StoredQuizQuestion struct {
	Question string             `json:"question"`
	Options  []StoredQuizOption `json:"options"`
}
