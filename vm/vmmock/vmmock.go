// Copyright 2026 The valence-net Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package vmmock is a hand-maintained gomock mock of vm.Host, in the shape
// mockgen would generate, for tests of packages that drive a vm.Host
// without standing up a real execution engine.
package vmmock

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/valence-net/zk-coprocessor/hash"
	"github.com/valence-net/zk-coprocessor/vm"
)

var _ vm.Host = (*MockHost)(nil)

// MockHost is a mock of the vm.Host interface.
type MockHost struct {
	ctrl     *gomock.Controller
	recorder *MockHostMockRecorder
}

// MockHostMockRecorder is the mock recorder for MockHost.
type MockHostMockRecorder struct {
	mock *MockHost
}

// NewMockHost constructs a MockHost.
func NewMockHost(ctrl *gomock.Controller) *MockHost {
	mock := &MockHost{ctrl: ctrl}
	mock.recorder = &MockHostMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockHost) EXPECT() *MockHostMockRecorder {
	return m.recorder
}

// Execute mocks vm.Host.Execute.
func (m *MockHost) Execute(ctx context.Context, controllerID hash.Hash, function string, argsJSON []byte) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Execute", ctx, controllerID, function, argsJSON)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Execute indicates an expected call of Execute.
func (mr *MockHostMockRecorder) Execute(ctx, controllerID, function, argsJSON interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Execute", reflect.TypeOf((*MockHost)(nil).Execute), ctx, controllerID, function, argsJSON)
}

// Updated mocks vm.Host.Updated.
func (m *MockHost) Updated(controllerID hash.Hash) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Updated", controllerID)
}

// Updated indicates an expected call of Updated.
func (mr *MockHostMockRecorder) Updated(controllerID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Updated", reflect.TypeOf((*MockHost)(nil).Updated), controllerID)
}
