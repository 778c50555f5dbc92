package csv_to_postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"
)

// Updater -- механизм обновления данных в базе данных на основе CSV документа.
// inf-файл рядом с документом содержит время его последней выгрузки;
// перезаливаем таблицу только когда выгрузка новее сохраненной отметки.
type Updater struct {
	InfURL     string
	CSVURL     string
	LastModCol string

	Fetcher      Fetcher
	CSVProcessor *Processor
	DBUpdater    *PostgresUpdater
}

func NewUpdater(infURL, csvURL, lastModCol string, fetcher Fetcher, csvProc *Processor, dbUp *PostgresUpdater) *Updater {
	return &Updater{
		InfURL:       infURL,
		CSVURL:       csvURL,
		LastModCol:   lastModCol,
		Fetcher:      fetcher,
		CSVProcessor: csvProc,
		DBUpdater:    dbUp,
	}
}

// fetchInfTime получает время последнего обновления из inf-файла.
// Первая распознанная строка побеждает: либо "2006-01-02 15:04:05",
// либо Unix-время в секундах.
func (u *Updater) fetchInfTime(ctx context.Context) (time.Time, error) {
	body, err := u.Fetcher.Fetch(u.InfURL)
	if err != nil {
		return time.Time{}, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return time.Time{}, err
	}
	str := strings.TrimSpace(string(data))
	if str == "" {
		return time.Time{}, fmt.Errorf("inf-файл пустой")
	}

	for _, line := range strings.Split(str, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if t, err := time.Parse("2006-01-02 15:04:05", line); err == nil {
			return t, nil
		}
		if epochSec, err := strconv.ParseInt(line, 10, 64); err == nil {
			return time.Unix(epochSec, 0), nil
		}
	}

	return time.Time{}, fmt.Errorf("не удалось определить время из inf-файла")
}

func (u *Updater) getStoredTime(ctx context.Context, db *sql.DB) (time.Time, error) {
	var storedTime time.Time
	err := db.QueryRowContext(ctx,
		"SELECT last_update FROM tracker.metadata WHERE key_name = $1",
		u.LastModCol).Scan(&storedTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return storedTime, nil
}

// Execute выполняет процесс обновления, если это необходимо.
func (u *Updater) Execute(ctx context.Context, db *sql.DB) error {
	modTime, err := u.fetchInfTime(ctx)
	if err != nil {
		return err
	}
	storedTime, err := u.getStoredTime(ctx, db)
	if err != nil {
		return err
	}

	if !modTime.After(storedTime) {
		log.Printf("Обновление не требуется, данные актуальны.")
		return nil
	}

	log.Printf("Начало обновления данных с %s", u.CSVURL)
	body, err := u.Fetcher.Fetch(u.CSVURL)
	if err != nil {
		return err
	}
	defer body.Close()

	rows, err := u.CSVProcessor.ProcessCSV(body)
	if err != nil {
		return err
	}

	dbCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if err := u.DBUpdater.UpdateData(dbCtx, rows); err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO tracker.metadata (key_name, last_update)
		VALUES ($1, $2)
		ON CONFLICT (key_name) DO UPDATE SET last_update = EXCLUDED.last_update
	`, u.LastModCol, modTime)
	if err != nil {
		return fmt.Errorf("metadata update error: %w", err)
	}

	log.Printf("Обновление данных завершено успешно: %d строк.", len(rows))
	return nil
}
