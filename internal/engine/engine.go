package engine

// Engine answers queries against the workbooks held in its Store.
type Engine struct {
	store *Store
}

func New(store *Store) *Engine {
	if store == nil {
		store = NewStore()
	}
	return &Engine{store: store}
}

// Register stores wb and returns its handle.
func (e *Engine) Register(wb *Workbook) string {
	return e.store.Put(wb)
}

// Workbooks reports how many workbooks are registered.
func (e *Engine) Workbooks() int {
	return e.store.Len()
}

func (e *Engine) ListTables(handle string) ([]string, error) {
	wb, err := e.store.Get(handle)
	if err != nil {
		return nil, err
	}
	return wb.TableNames(), nil
}

// ListRows returns the canonical table name and its row labels.
func (e *Engine) ListRows(handle, table string) (string, []string, error) {
	wb, err := e.store.Get(handle)
	if err != nil {
		return "", nil, err
	}
	t, err := wb.Lookup(table)
	if err != nil {
		return "", nil, err
	}
	return t.Name(), ListRowLabels(t), nil
}

// SumRow returns the canonical table name with the sum of the named row.
func (e *Engine) SumRow(handle, table, row string) (string, RowSum, error) {
	wb, err := e.store.Get(handle)
	if err != nil {
		return "", RowSum{}, err
	}
	t, err := wb.Lookup(table)
	if err != nil {
		return "", RowSum{}, err
	}
	res, err := SumRow(t, row)
	if err != nil {
		return "", RowSum{}, err
	}
	return t.Name(), res, nil
}
