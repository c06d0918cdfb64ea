package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/config"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/repository"
)

// Seeds a fresh database with a demo cohort, surveys with Spanish
// questions, completed participations and grade histories so the
// dashboards render without real data.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)

	cohortRepo := repository.NewCohortRepo(db)
	studentRepo := repository.NewStudentRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)
	participationRepo := repository.NewParticipationRepo(db)
	answerRepo := repository.NewAnswerRepo(db)
	academicRepo := repository.NewAcademicRecordRepo(db)

	cohort := &model.Cohort{Year: 2021, Period: model.PeriodEnero}
	cohortID, err := cohortRepo.Create(ctx, cohort)
	if err != nil {
		log.Fatalf("seed cohort: %v", err)
	}
	log.Printf("cohort 2021-1 created: %s", cohortID)

	students := []*model.Student{
		{Matricula: "210001", Name: "Ana Martínez", Career: "Ingeniería en Software", Status: model.StatusInscrito, CohortID: cohortID, CurrentTerm: 9},
		{Matricula: "210002", Name: "Luis Hernández", Career: "Ingeniería en Software", Status: model.StatusInscrito, CohortID: cohortID, CurrentTerm: 8},
		{Matricula: "210003", Name: "María López", Career: "Ingeniería Industrial", Status: model.StatusBajaTemporal, CohortID: cohortID, CurrentTerm: 5},
	}
	for _, s := range students {
		id, err := studentRepo.Create(ctx, s)
		if err != nil {
			log.Fatalf("seed student %s: %v", s.Matricula, err)
		}
		s.ID = id
	}
	log.Printf("%d students created", len(students))

	survey := &model.Survey{
		Title:   "Encuesta de Seguimiento de Titulación",
		Type:    model.SurveyTypeSeguimiento,
		StartAt: time.Now().AddDate(0, -1, 0),
		EndAt:   time.Now().AddDate(0, 2, 0),
		Questions: []model.Question{
			{ID: "q1", Title: "¿Cuántos cuatrimestres has completado?", Type: model.QuestionTypeText},
			{ID: "q2", Title: "¿Estás al corriente con tus pagos de colegiatura?", Type: model.QuestionTypeText},
			{ID: "q3", Title: "¿Ya cubriste los gastos de titulación?", Type: model.QuestionTypeText},
			{ID: "q4", Title: "¿Tienes tu E.FIRMA vigente?", Type: model.QuestionTypeText},
			{ID: "q5", Title: "¿Tienes acreditado el inglés?", Type: model.QuestionTypeText},
			{ID: "q6", Title: "Califica tu avance del 1 al 10", Type: model.QuestionTypeText},
		},
	}
	surveyID, err := surveyRepo.Create(ctx, survey)
	if err != nil {
		log.Fatalf("seed survey: %v", err)
	}
	survey.ID = surveyID
	log.Printf("survey created: %s", surveyID)

	answerSets := map[string][]string{
		"210001": {"10 cuatrimestres", "sin adeudo, al corriente", "pagado completo", "ya tengo mi e.firma vigente", "acreditado", "9"},
		"210002": {"me falta uno", "tengo un adeudo pendiente", "todavía no", "no tengo, está en trámite", "pendiente", "7"},
		"210003": {"voy en quinto", "atrasado con dos mensualidades", "falta", "sin tramitar", "no", "5"},
	}

	for _, s := range students {
		participation := &model.Participation{
			SurveyID:  surveyID,
			StudentID: s.ID,
			Status:    model.ParticipationPending,
		}
		if _, err := participationRepo.Create(ctx, participation); err != nil {
			log.Fatalf("seed participation: %v", err)
		}

		texts := answerSets[s.Matricula]
		answers := make([]*model.Answer, 0, len(texts))
		for i, text := range texts {
			q := survey.Questions[i]
			answers = append(answers, &model.Answer{
				ParticipationID: participation.ID,
				StudentID:       s.ID,
				SurveyID:        surveyID,
				SurveyTitle:     survey.Title,
				SurveyType:      survey.Type,
				QuestionID:      q.ID,
				QuestionTitle:   q.Title,
				Text:            text,
			})
		}
		if err := answerRepo.CreateBatch(ctx, answers); err != nil {
			log.Fatalf("seed answers: %v", err)
		}
		if err := participationRepo.MarkCompleted(ctx, participation.ID); err != nil {
			log.Fatalf("seed participation completion: %v", err)
		}
	}
	log.Println("participations and answers created")

	records := []*model.AcademicRecord{
		{StudentID: students[0].ID, Matricula: "210001", Course: "Bases de Datos", Term: "2023-1", CohortTag: "2021-1", FinalGrade: 9.2, Status: model.CourseAprobada},
		{StudentID: students[0].ID, Matricula: "210001", Course: "Redes", Term: "2023-1", CohortTag: "2021-1", FinalGrade: 8.7, Status: model.CourseAprobada},
		{StudentID: students[1].ID, Matricula: "210002", Course: "Bases de Datos", Term: "2023-1", CohortTag: "2021-1", FinalGrade: 5, Status: model.CourseReprobada},
		{StudentID: students[1].ID, Matricula: "210002", Course: "Redes", Term: "2023-1", CohortTag: "2021-1", FinalGrade: 6.5, Status: model.CourseAprobada},
		{StudentID: students[1].ID, Matricula: "210002", Course: "Programación", Term: "2023-2", CohortTag: "2021-1", FinalGrade: 9, Status: model.CourseAprobada},
		{StudentID: students[2].ID, Matricula: "210003", Course: "Cálculo", Term: "2022-2", CohortTag: "2021-1", FinalGrade: 6.1, Status: model.CourseAprobada, ExtraGrade: 6.1},
	}
	if err := academicRepo.CreateBatch(ctx, records); err != nil {
		log.Fatalf("seed academic records: %v", err)
	}
	log.Printf("%d academic records created", len(records))

	log.Println("seed completed")
}
