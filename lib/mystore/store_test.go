package mystore

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

type Person struct {
	UID  string
	Name string
	Age  int
}

var (
	person = Person{UID: "123", Name: "Marc", Age: 42}
	other  = Person{UID: "456", Name: "Eva", Age: 12}
)

func TestStore(t *testing.T) {
	c := context.TODO()

	backends := map[string]func(t *testing.T) (Store[Person], func()){
		"In memory": func(t *testing.T) (Store[Person], func()) {
			s, cleanup, err := NewInMemoryStore[Person](c)
			assert.NoError(t, err)
			return s, cleanup
		},
		"Sqlite": func(t *testing.T) (Store[Person], func()) {
			s, cleanup, err := NewSqliteStore[Person](c, filepath.Join(t.TempDir(), "store.db"))
			assert.NoError(t, err)
			return s, cleanup
		},
	}

	for name, create := range backends {
		t.Run(name, func(t *testing.T) {
			ps, cleanup := create(t)
			defer cleanup()

			t.Run("Get not found", func(t *testing.T) {
				_, found, err := ps.Get(c, person.UID)
				assert.NoError(t, err)
				assert.False(t, found)
			})

			t.Run("Put", func(t *testing.T) {
				assert.NoError(t, ps.Put(c, person.UID, person))
			})

			t.Run("Get found", func(t *testing.T) {
				p, found, err := ps.Get(c, person.UID)
				assert.NoError(t, err)
				assert.True(t, found)
				assert.Equal(t, Person{UID: "123", Name: "Marc", Age: 42}, p)
			})

			t.Run("Overwrite", func(t *testing.T) {
				older := person
				older.Age = 43
				assert.NoError(t, ps.Put(c, person.UID, older))

				p, _, err := ps.Get(c, person.UID)
				assert.NoError(t, err)
				assert.Equal(t, 43, p.Age)
				assert.NoError(t, ps.Put(c, person.UID, person))
			})

			t.Run("Commit transaction", func(t *testing.T) {
				err := ps.RunInTransaction(c, func(c context.Context) error {
					_, found, err := ps.Get(c, person.UID)
					assert.NoError(t, err)
					assert.True(t, found)
					return ps.Put(c, other.UID, other)
				})
				assert.NoError(t, err)

				_, found, err := ps.Get(c, other.UID)
				assert.NoError(t, err)
				assert.True(t, found)
			})

			t.Run("Rollback transaction", func(t *testing.T) {
				err := ps.RunInTransaction(c, func(c context.Context) error {
					err := ps.Put(c, "789", Person{UID: "789"})
					assert.NoError(t, err)
					return fmt.Errorf("abort")
				})
				assert.Error(t, err)

				_, found, err := ps.Get(c, "789")
				assert.NoError(t, err)
				assert.False(t, found)
			})

			t.Run("List", func(t *testing.T) {
				all, err := ps.List(c)
				assert.NoError(t, err)
				assert.Equal(t, []Person{person, other}, all)
			})
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "Person", kindOf[Person]())
}
