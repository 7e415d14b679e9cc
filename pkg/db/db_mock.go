package db

import (
	"github.com/stretchr/testify/mock"
	bolt "go.etcd.io/bbolt"

	"github.com/secincident/incident-db/pkg/types"
)

type MockOperation struct {
	mock.Mock
}

var _ Operation = (*MockOperation)(nil)

func (_m *MockOperation) BatchUpdate(fn func(*bolt.Tx) error) error {
	ret := _m.Called(fn)
	return ret.Error(0)
}

type PutDataSourceArgs struct {
	Tx             *bolt.Tx
	TxAnything     bool
	BktName        string
	Source         types.DataSource
	SourceAnything bool
}

type PutDataSourceExpectation struct {
	Args    PutDataSourceArgs
	Returns error
}

func (_m *MockOperation) PutDataSource(tx *bolt.Tx, bktName string, source types.DataSource) error {
	ret := _m.Called(tx, bktName, source)
	return ret.Error(0)
}

func (_m *MockOperation) ApplyPutDataSourceExpectations(expectations []PutDataSourceExpectation) {
	for _, e := range expectations {
		args := []interface{}{anything(e.Args.TxAnything, e.Args.Tx), e.Args.BktName,
			anything(e.Args.SourceAnything, e.Args.Source)}
		_m.On("PutDataSource", args...).Return(e.Returns)
	}
}

type PutDefinitionArgs struct {
	Tx         *bolt.Tx
	TxAnything bool
	Definition types.Definition
}

type PutDefinitionExpectation struct {
	Args    PutDefinitionArgs
	Returns error
}

func (_m *MockOperation) PutDefinition(tx *bolt.Tx, def types.Definition) error {
	ret := _m.Called(tx, def)
	return ret.Error(0)
}

func (_m *MockOperation) ApplyPutDefinitionExpectations(expectations []PutDefinitionExpectation) {
	for _, e := range expectations {
		_m.On("PutDefinition", anything(e.Args.TxAnything, e.Args.Tx), e.Args.Definition).Return(e.Returns)
	}
}

func (_m *MockOperation) GetDefinition(name string) (types.Definition, error) {
	ret := _m.Called(name)
	def, _ := ret.Get(0).(types.Definition)
	return def, ret.Error(1)
}

func (_m *MockOperation) ForEachDefinition(fn func(def types.Definition) error) error {
	ret := _m.Called(fn)
	return ret.Error(0)
}

type PutSeverityArgs struct {
	Tx         *bolt.Tx
	TxAnything bool
	Name       string
	Severity   types.Severity
}

type PutSeverityExpectation struct {
	Args    PutSeverityArgs
	Returns error
}

func (_m *MockOperation) PutSeverity(tx *bolt.Tx, name string, severity types.Severity) error {
	ret := _m.Called(tx, name, severity)
	return ret.Error(0)
}

func (_m *MockOperation) ApplyPutSeverityExpectations(expectations []PutSeverityExpectation) {
	for _, e := range expectations {
		_m.On("PutSeverity", anything(e.Args.TxAnything, e.Args.Tx), e.Args.Name, e.Args.Severity).Return(e.Returns)
	}
}

func (_m *MockOperation) GetSeverity(name string) (types.Severity, error) {
	ret := _m.Called(name)
	severity, _ := ret.Get(0).(types.Severity)
	return severity, ret.Error(1)
}

func (_m *MockOperation) PutIncident(tx *bolt.Tx, incident types.Incident) error {
	ret := _m.Called(tx, incident)
	return ret.Error(0)
}

func (_m *MockOperation) GetIncident(id string) (types.Incident, error) {
	ret := _m.Called(id)
	incident, _ := ret.Get(0).(types.Incident)
	return incident, ret.Error(1)
}

func (_m *MockOperation) PutIndicator(tx *bolt.Tx, indicator types.Indicator) error {
	ret := _m.Called(tx, indicator)
	return ret.Error(0)
}

func (_m *MockOperation) GetIndicator(country, name string, year int) (types.Indicator, error) {
	ret := _m.Called(country, name, year)
	indicator, _ := ret.Get(0).(types.Indicator)
	return indicator, ret.Error(1)
}

func (_m *MockOperation) SetMetadata(metadata Metadata) error {
	ret := _m.Called(metadata)
	return ret.Error(0)
}

func (_m *MockOperation) GetMetadata() (Metadata, error) {
	ret := _m.Called()
	metadata, _ := ret.Get(0).(Metadata)
	return metadata, ret.Error(1)
}

func anything(wildcard bool, v interface{}) interface{} {
	if wildcard {
		return mock.Anything
	}
	return v
}
