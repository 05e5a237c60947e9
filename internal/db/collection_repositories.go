package db

import (
	"context"
	"iter"
	"time"

	"github.com/terraincognita07/baseapp/internal/models"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	*OwnedRepository[models.Project]
	database *gorm.DB
}

func NewProjectRepository(database *gorm.DB) *ProjectRepository {
	return &ProjectRepository{OwnedRepository: NewOwnedRepository[models.Project](database), database: database}
}

// UpdatedSince streams the user's projects with updated_at strictly after
// since, newest first. Each range over the sequence runs a fresh query.
func (repo *ProjectRepository) UpdatedSince(ctx context.Context, userID string, since time.Time) iter.Seq2[models.Project, error] {
	return func(yield func(models.Project, error) bool) {
		rows, err := repo.database.WithContext(ctx).
			Model(&models.Project{}).
			Where("user_id = ? AND updated_at > ?", userID, since.UTC()).
			Order("updated_at DESC, id DESC").
			Rows()
		if err != nil {
			yield(models.Project{}, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			var project models.Project
			if err := repo.database.ScanRows(rows, &project); err != nil {
				yield(models.Project{}, err)
				return
			}
			if !yield(project, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(models.Project{}, err)
		}
	}
}

type InvoiceRepository struct {
	*OwnedRepository[models.Invoice]
	database *gorm.DB
}

func NewInvoiceRepository(database *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{OwnedRepository: NewOwnedRepository[models.Invoice](database), database: database}
}

func (repo *InvoiceRepository) SumTotal(ctx context.Context, userID string) (float64, error) {
	var total float64
	row := repo.database.WithContext(ctx).
		Model(&models.Invoice{}).
		Select("COALESCE(SUM(total), 0)").
		Where("user_id = ?", userID).
		Row()
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// SumTotalBetween sums invoices dated in [fromStart, toEnd).
func (repo *InvoiceRepository) SumTotalBetween(ctx context.Context, userID string, fromStart time.Time, toEnd time.Time) (float64, error) {
	var total float64
	row := repo.database.WithContext(ctx).
		Model(&models.Invoice{}).
		Select("COALESCE(SUM(total), 0)").
		Where("user_id = ? AND date >= ? AND date < ?", userID, fromStart.UTC(), toEnd.UTC()).
		Row()
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

type UploadRepository struct {
	*OwnedRepository[models.Upload]
	database *gorm.DB
}

func NewUploadRepository(database *gorm.DB) *UploadRepository {
	return &UploadRepository{OwnedRepository: NewOwnedRepository[models.Upload](database), database: database}
}

func (repo *UploadRepository) SumFileSize(ctx context.Context, userID string) (int64, error) {
	var total int64
	row := repo.database.WithContext(ctx).
		Model(&models.Upload{}).
		Select("COALESCE(SUM(file_file_size), 0)").
		Where("user_id = ?", userID).
		Row()
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
