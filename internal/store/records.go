package store

import "fmt"

type Workers struct {
	db *DB
}

// Insert stores w and sets w.ID to the generated id.
func (t *Workers) Insert(w *Worker) error {
	row := *w
	err := t.db.commit(func(s *state) error {
		s.LastWorkerID++
		row.ID = s.LastWorkerID
		s.Workers = append(s.Workers, row)
		return nil
	})
	if err != nil {
		return err
	}
	w.ID = row.ID
	return nil
}

func (t *Workers) List() ([]Worker, error) {
	var out []Worker
	t.db.read(func(s *state) {
		out = append(out, s.Workers...)
	})
	return out, nil
}

func (t *Workers) Retrieve(id int) (Worker, error) {
	var (
		w     Worker
		found bool
	)
	t.db.read(func(s *state) {
		for _, candidate := range s.Workers {
			if candidate.ID == id {
				w, found = candidate, true
				return
			}
		}
	})
	if !found {
		return Worker{}, fmt.Errorf("worker %d: %w", id, ErrNotFound)
	}
	return w, nil
}

func (t *Workers) Update(w *Worker) error {
	return t.db.commit(func(s *state) error {
		for i := range s.Workers {
			if s.Workers[i].ID == w.ID {
				s.Workers[i] = *w
				return nil
			}
		}
		return fmt.Errorf("worker %d: %w", w.ID, ErrNotFound)
	})
}

type Tasks struct {
	db *DB
}

// Insert stores task and sets task.ID to the generated id.
func (t *Tasks) Insert(task *Task) error {
	row := *task
	err := t.db.commit(func(s *state) error {
		s.LastTaskID++
		row.ID = s.LastTaskID
		s.Tasks = append(s.Tasks, row)
		return nil
	})
	if err != nil {
		return err
	}
	task.ID = row.ID
	return nil
}

func (t *Tasks) List() ([]Task, error) {
	var out []Task
	t.db.read(func(s *state) {
		out = append(out, s.Tasks...)
	})
	return out, nil
}

func (t *Tasks) Retrieve(id int) (Task, error) {
	var (
		task  Task
		found bool
	)
	t.db.read(func(s *state) {
		for _, candidate := range s.Tasks {
			if candidate.ID == id {
				task, found = candidate, true
				return
			}
		}
	})
	if !found {
		return Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return task, nil
}

func (t *Tasks) Update(task *Task) error {
	return t.db.commit(func(s *state) error {
		for i := range s.Tasks {
			if s.Tasks[i].ID == task.ID {
				s.Tasks[i] = *task
				return nil
			}
		}
		return fmt.Errorf("task %d: %w", task.ID, ErrNotFound)
	})
}
