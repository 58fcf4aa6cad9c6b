package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/jobcolor/internal/db"
	"github.com/alexanderramin/jobcolor/internal/domain"
	"github.com/alexanderramin/jobcolor/internal/repository"
)

// Seed is the YAML document loaded by `serve --seed`.
type Seed struct {
	Items []SeedItem `yaml:"items"`
	Jobs  []SeedJob  `yaml:"jobs"`
}

type SeedItem struct {
	ID   any    `yaml:"id"`
	Name string `yaml:"name"`
}

type SeedJob struct {
	Number        string        `yaml:"number"`
	BookingID     any           `yaml:"bookingId"`
	ClientName    string        `yaml:"client"`
	JobName       string        `yaml:"name"`
	OrderQuantity int           `yaml:"orderQuantity"`
	PODate        string        `yaml:"poDate"`
	Contents      []SeedContent `yaml:"contents"`
}

type SeedContent struct {
	Name       string      `yaml:"name"`
	ContentsID any         `yaml:"contentsId"`
	Type       any         `yaml:"type"`
	Qty        any         `yaml:"qty"`
	Colors     []SeedColor `yaml:"colors"`
}

type SeedColor struct {
	Spec     string `yaml:"spec"`
	Side     string `yaml:"side"`
	ItemID   *int   `yaml:"itemId"`
	ItemName string `yaml:"itemName"`
}

// ParseSeed decodes a seed document.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	for i, j := range seed.Jobs {
		if strings.TrimSpace(j.Number) == "" {
			return nil, fmt.Errorf("seed job %d: number is required", i)
		}
		for k, c := range j.Contents {
			if strings.TrimSpace(c.Name) == "" {
				return nil, fmt.Errorf("seed job %s content %d: name is required", j.Number, k)
			}
		}
	}
	for i, it := range seed.Items {
		if it.ID == nil || strings.TrimSpace(it.Name) == "" {
			return nil, fmt.Errorf("seed item %d: id and name are required", i)
		}
	}
	return &seed, nil
}

// LoadSeedFile reads and decodes the seed at path.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed %s: %w", path, err)
	}
	return ParseSeed(data)
}

type seedService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewSeedService(uow db.UnitOfWork, observers ...UseCaseObserver) SeedService {
	return &seedService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Apply upserts the seed's items and jobs. Contents named in the seed
// replace the stored ones; other stored contents are left alone.
func (s *seedService) Apply(ctx context.Context, seed *Seed) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "apply-seed", startedAt, fields, &err)

	if seed == nil {
		return nil
	}
	fields["items"] = len(seed.Items)
	fields["jobs"] = len(seed.Jobs)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteCatalogRepo(tx)
		txJobs := repository.NewSQLiteJobRepo(tx)
		txContents := repository.NewSQLiteContentRepo(tx)

		for _, it := range seed.Items {
			item := domain.CatalogItem{ID: domain.ItemRef(fmt.Sprint(it.ID)), Name: strings.TrimSpace(it.Name)}
			if err := txItems.Upsert(ctx, item); err != nil {
				return err
			}
		}
		for _, sj := range seed.Jobs {
			job, contents, err := sj.toDomain()
			if err != nil {
				return err
			}
			if err := txJobs.Upsert(ctx, job); err != nil {
				return err
			}
			for _, c := range contents {
				if err := txContents.Replace(ctx, job.Number, c); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (sj SeedJob) toDomain() (*domain.Job, []domain.Content, error) {
	bookingID, err := toOpaque(sj.BookingID)
	if err != nil {
		return nil, nil, fmt.Errorf("seed job %s bookingId: %w", sj.Number, err)
	}
	job := &domain.Job{
		Number:        strings.TrimSpace(sj.Number),
		BookingID:     bookingID,
		ClientName:    sj.ClientName,
		JobName:       sj.JobName,
		OrderQuantity: sj.OrderQuantity,
		PODate:        sj.PODate,
	}

	contents := make([]domain.Content, 0, len(sj.Contents))
	for _, sc := range sj.Contents {
		c := domain.Content{PlanContName: sc.Name, Colors: []domain.ColorAssignment{}}
		if c.JobBookingJobCardContentsID, err = toOpaque(sc.ContentsID); err != nil {
			return nil, nil, fmt.Errorf("seed content %s contentsId: %w", sc.Name, err)
		}
		if c.PlanContType, err = toOpaque(sc.Type); err != nil {
			return nil, nil, fmt.Errorf("seed content %s type: %w", sc.Name, err)
		}
		if c.PlanContQty, err = toOpaque(sc.Qty); err != nil {
			return nil, nil, fmt.Errorf("seed content %s qty: %w", sc.Name, err)
		}
		for _, col := range sc.Colors {
			c.Colors = append(c.Colors, domain.ColorAssignment{
				ColorSpecification: col.Spec,
				FormSide:           col.Side,
				ItemGroupID:        domain.ItemGroupColor,
				ItemID:             col.ItemID,
				ItemName:           col.ItemName,
			})
		}
		contents = append(contents, c)
	}
	return job, contents, nil
}

func toOpaque(v any) (domain.Opaque, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return domain.Opaque(raw), nil
}
