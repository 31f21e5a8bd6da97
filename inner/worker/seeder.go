package worker

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"workers/inner/common"
	"workers/inner/gender"
	"workers/inner/pesel"

	"github.com/icrowley/fake"
	"go.uber.org/zap"
)

const (
	SeedPassword = "Admin1234*"

	seedYearFrom = 1950
	seedYearTo   = 2005
)

type Creator interface {
	AddWorker(ctx context.Context, payload Payload, opts WriteOptions) (int64, error)
}

// Seeder заполняет базу синтетическими работниками.
// Сгенерированные данные согласованы между собой, поэтому проверка правил пропускается
type Seeder struct {
	creator Creator
	logger  *common.Logger
}

func NewSeeder(creator Creator, logger *common.Logger) *Seeder {
	return &Seeder{
		creator: creator,
		logger:  logger,
	}
}

// Seed создаёт до size работников и возвращает число созданных.
// Совпадения email/pesel пропускаются
func (s *Seeder) Seed(ctx context.Context, size int) (int, error) {
	s.logger.Info("Seeding workers", zap.Int("size", size))

	created := 0
	for i := 0; i < size; i++ {
		payload, err := GeneratePayload()
		if err != nil {
			return created, err
		}

		_, err = s.creator.AddWorker(ctx, payload, WriteOptions{SkipValidation: true})
		if err != nil {
			if errors.As(err, &common.AlreadyExistsError{}) {
				s.logger.Debug("Skipping duplicate synthetic worker", zap.String("email", payload.Email))
				continue
			}
			s.logger.Error("Seeding failed", zap.Int("created", created), zap.Error(err))
			return created, fmt.Errorf("error seeding workers: %w", err)
		}
		created++
	}

	s.logger.Info("Seeding finished", zap.Int("created", created))
	return created, nil
}

// GeneratePayload собирает согласованные данные: имя по полу, дата рождения, PESEL под эту дату и пол
func GeneratePayload() (Payload, error) {
	genderName := gender.Names()[rand.IntN(len(gender.Names()))]

	firstName, lastName := fake.MaleFirstName(), fake.MaleLastName()
	if genderName == gender.Woman {
		firstName, lastName = fake.FemaleFirstName(), fake.FemaleLastName()
	}

	birthdate := randomBirthdate()
	number, err := pesel.Generate(birthdate, genderName)
	if err != nil {
		return Payload{}, err
	}

	return Payload{
		Name:       firstName,
		Surname:    lastName,
		Email:      fake.EmailAddress(),
		Password:   SeedPassword,
		Repassword: SeedPassword,
		Birthdate:  birthdate.Format(BirthdateLayout),
		Pesel:      number,
		Gender:     genderName,
	}, nil
}

func randomBirthdate() time.Time {
	from := time.Date(seedYearFrom, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(seedYearTo, time.December, 31, 0, 0, 0, 0, time.UTC)
	days := int(to.Sub(from).Hours() / 24)
	return from.AddDate(0, 0, rand.IntN(days+1))
}
