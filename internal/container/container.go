package container

import (
	"go.uber.org/zap"

	app "coffee-bot/internal/application"
	"coffee-bot/internal/domain/entity"
	"coffee-bot/internal/domain/port"
)

type Container struct {
	UserService    *app.UserService
	SortingService *app.SortingService
	BatchService   *app.BatchService
}

// Deps внешние зависимости сервисов. Classifier может быть nil.
type Deps struct {
	Users      port.UserRepository
	Tallies    port.TallyRepository
	Segmenter  port.BeanSegmenter
	Classifier port.BeanClassifier
	Labels     entity.LabelSet
	Workers    int
	Logger     *zap.SugaredLogger
}

func New(d Deps) *Container {
	userService := app.NewUserService(d.Users)
	sortingService := app.NewSortingService(d.Segmenter, d.Classifier, d.Tallies, d.Labels, d.Logger.Named("sorting"))
	batchService := app.NewBatchService(d.Segmenter, d.Workers, d.Logger.Named("batch"))

	return &Container{
		UserService:    userService,
		SortingService: sortingService,
		BatchService:   batchService,
	}
}
