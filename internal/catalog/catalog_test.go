package catalog

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"github.com/yukikurage/project-estimation-api/internal/constants"
	"github.com/yukikurage/project-estimation-api/internal/models"
	"github.com/yukikurage/project-estimation-api/internal/repository"
	"github.com/yukikurage/project-estimation-api/internal/testutil"
	"gorm.io/gorm"
)

type CatalogTestSuite struct {
	suite.Suite
	ctx         context.Context
	db          *gorm.DB
	programmers repository.ProgrammerRepository
	tasks       repository.TaskRepository
}

func (suite *CatalogTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.db = testutil.NewDB(suite.T())
	suite.programmers = repository.NewProgrammerRepository(suite.db)
	suite.tasks = repository.NewTaskRepository(suite.db)
}

func (suite *CatalogTestSuite) workbook(rows [][]interface{}) *excelize.File {
	f := excelize.NewFile()
	_, err := f.NewSheet(constants.DefaultCatalogSheet)
	suite.Require().NoError(err)

	header := []interface{}{
		constants.DefaultCatalogNameColumn,
		constants.DefaultCatalogDescColumn,
		constants.DefaultCatalogClassColumn,
		constants.DefaultCatalogHoursColumn,
	}
	suite.Require().NoError(f.SetSheetRow(constants.DefaultCatalogSheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		suite.Require().NoError(err)
		suite.Require().NoError(f.SetSheetRow(constants.DefaultCatalogSheet, cell, &row))
	}
	return f
}

func (suite *CatalogTestSuite) load(f *excelize.File) *LoadReport {
	buf, err := f.WriteToBuffer()
	suite.Require().NoError(err)

	report, err := LoadTasks(suite.ctx, suite.tasks, bytes.NewReader(buf.Bytes()), DefaultOptions())
	suite.Require().NoError(err)
	return report
}

func (suite *CatalogTestSuite) TestSeedProgrammers() {
	created, err := SeedProgrammers(suite.ctx, suite.programmers, DefaultProgrammers)
	suite.NoError(err)
	suite.Equal(5, created)

	bob, err := suite.programmers.FindByName(suite.ctx, "Bob")
	suite.Require().NoError(err)
	suite.Equal("Pleno", bob.Seniority)
	suite.Equal("1.00", bob.Coefficient.StringFixed(2))
}

func (suite *CatalogTestSuite) TestSeedProgrammers_Idempotent() {
	testutil.CreateProgrammer(suite.T(), suite.db, "Alice", "1.75")

	created, err := SeedProgrammers(suite.ctx, suite.programmers, DefaultProgrammers)
	suite.NoError(err)
	suite.Equal(4, created)

	created, err = SeedProgrammers(suite.ctx, suite.programmers, DefaultProgrammers)
	suite.NoError(err)
	suite.Equal(0, created)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Programmer{}).Count(&count).Error)
	suite.Equal(int64(5), count)
}

func (suite *CatalogTestSuite) TestLoadTasks() {
	f := suite.workbook([][]interface{}{
		{"Levantamento de requisitos", "Análise", "Gestão", 8},
		{"Tela de login", "Frontend", "Desenvolvimento", 2.5},
	})

	report := suite.load(f)
	suite.Equal(2, report.Created)
	suite.Equal(0, report.Existing)
	suite.Empty(report.Invalid)

	reqs, err := suite.tasks.FindByName(suite.ctx, "Levantamento de requisitos")
	suite.Require().NoError(err)
	suite.Equal(models.TaskTypeManagement, reqs.Type)
	suite.Equal("Análise", reqs.Description)
	suite.Equal("8.00", reqs.BaseTimeHours.StringFixed(2))

	login, err := suite.tasks.FindByName(suite.ctx, "Tela de login")
	suite.Require().NoError(err)
	suite.Equal(models.TaskTypeDevelopment, login.Type)
	suite.Equal("2.50", login.BaseTimeHours.StringFixed(2))
}

func (suite *CatalogTestSuite) TestLoadTasks_SkipsExistingNames() {
	testutil.CreateTask(suite.T(), suite.db, "Tela de login", "3")
	f := suite.workbook([][]interface{}{
		{"Tela de login", "Frontend", "Desenvolvimento", 2.5},
		{"Deploy", "Infra", "Desenvolvimento", 4},
	})

	report := suite.load(f)
	suite.Equal(1, report.Created)
	suite.Equal(1, report.Existing)

	login, err := suite.tasks.FindByName(suite.ctx, "Tela de login")
	suite.Require().NoError(err)
	suite.Equal("3.00", login.BaseTimeHours.StringFixed(2))
}

func (suite *CatalogTestSuite) TestLoadTasks_InvalidRows() {
	f := suite.workbook([][]interface{}{
		{"", "Frontend", "Desenvolvimento", 2},
		{"Sem estimativa", "Frontend", "Desenvolvimento", "muito"},
		{"Gigante", "Backend", "Desenvolvimento", 1000},
		{"Negativa", "Backend", "Desenvolvimento", -1},
		{"Valida", "Backend", "Desenvolvimento", 1},
	})

	report := suite.load(f)
	suite.Equal(1, report.Created)
	suite.Require().Len(report.Invalid, 4)
	suite.Equal(2, report.Invalid[0].Row)
	suite.Equal(3, report.Invalid[1].Row)
	suite.Equal(4, report.Invalid[2].Row)
	suite.Equal(5, report.Invalid[3].Row)
}

func (suite *CatalogTestSuite) TestLoadTasks_MissingColumn() {
	f := excelize.NewFile()
	_, err := f.NewSheet(constants.DefaultCatalogSheet)
	suite.Require().NoError(err)
	header := []interface{}{constants.DefaultCatalogNameColumn}
	suite.Require().NoError(f.SetSheetRow(constants.DefaultCatalogSheet, "A1", &header))

	buf, err := f.WriteToBuffer()
	suite.Require().NoError(err)
	_, err = LoadTasks(suite.ctx, suite.tasks, bytes.NewReader(buf.Bytes()), DefaultOptions())
	suite.Error(err)
	suite.Contains(err.Error(), constants.DefaultCatalogHoursColumn)
}

func (suite *CatalogTestSuite) TestLoadTasksFromWorkbook() {
	f := suite.workbook([][]interface{}{
		{"Deploy", "Infra", "Desenvolvimento", 4},
	})
	path := filepath.Join(suite.T().TempDir(), "catalog.xlsx")
	suite.Require().NoError(f.SaveAs(path))

	report, err := LoadTasksFromWorkbook(suite.ctx, suite.tasks, path, DefaultOptions())
	suite.NoError(err)
	suite.Equal(1, report.Created)

	_, err = LoadTasksFromWorkbook(suite.ctx, suite.tasks, filepath.Join(suite.T().TempDir(), "missing.xlsx"), DefaultOptions())
	suite.Error(err)
}

func TestCatalogTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}
