package initializer

import (
	"database/sql"

	"jeko/database"
	"jeko/object"
	"jeko/token"
)

// The database natives. They all operate on one current connection,
// opened by 'db_connect', so the whole batch is made together and
// closes over it.

func databaseNatives() []*object.Native {

	var currentDB *sql.DB

	stringArgs := func(name string, args []object.Object) ([]string, *object.Error) {
		result := make([]string, len(args))
		for k, arg := range args {
			s, ok := arg.(*object.String)
			if !ok {
				return nil, nativeTypeError(name, arg)
			}
			result[k] = s.Value
		}
		return result, nil
	}

	return []*object.Native{

		{Name: "db_connect", Arity: 6, Fn: func(args []object.Object) object.Object {
			params, err := stringArgs("db_connect", args)
			if err != nil {
				return err
			}
			db, connErr := database.GetdB(params[0], params[1], params[2], params[3], params[4], params[5])
			if connErr != nil {
				return object.CreateErr("eval/db/conn", token.Token{}, connErr.Error())
			}
			if currentDB != nil {
				currentDB.Close()
			}
			currentDB = db
			return object.TRUE
		}},

		{Name: "db_query", Arity: 1, Fn: func(args []object.Object) object.Object {
			params, err := stringArgs("db_query", args)
			if err != nil {
				return err
			}
			if currentDB == nil {
				return object.CreateErr("eval/db/blank", token.Token{})
			}
			rows, queryErr := database.RunQuery(currentDB, params[0])
			if queryErr != nil {
				return object.CreateErr("eval/db/query", token.Token{}, queryErr.Error())
			}
			result := []object.Object{}
			for _, row := range rows {
				cells := []object.Object{}
				for _, cell := range row {
					cells = append(cells, &object.String{Value: cell})
				}
				result = append(result, object.ListFromSlice(cells))
			}
			return object.ListFromSlice(result)
		}},

		{Name: "db_exec", Arity: 1, Fn: func(args []object.Object) object.Object {
			params, err := stringArgs("db_exec", args)
			if err != nil {
				return err
			}
			if currentDB == nil {
				return object.CreateErr("eval/db/blank", token.Token{})
			}
			affected, execErr := database.RunExec(currentDB, params[0])
			if execErr != nil {
				return object.CreateErr("eval/db/query", token.Token{}, execErr.Error())
			}
			return &object.Integer{Value: affected}
		}},

		{Name: "db_add_user", Arity: 2, Fn: func(args []object.Object) object.Object {
			params, err := stringArgs("db_add_user", args)
			if err != nil {
				return err
			}
			if currentDB == nil {
				return object.CreateErr("eval/db/blank", token.Token{})
			}
			if addErr := database.AddUser(currentDB, params[0], params[1]); addErr != nil {
				return object.CreateErr("eval/db/query", token.Token{}, addErr.Error())
			}
			return object.TRUE
		}},

		{Name: "db_check_user", Arity: 2, Fn: func(args []object.Object) object.Object {
			params, err := stringArgs("db_check_user", args)
			if err != nil {
				return err
			}
			if currentDB == nil {
				return object.CreateErr("eval/db/blank", token.Token{})
			}
			valid, checkErr := database.ValidateUser(currentDB, params[0], params[1])
			if checkErr != nil {
				return object.CreateErr("eval/db/query", token.Token{}, checkErr.Error())
			}
			return object.MakeBool(valid)
		}},

		{Name: "db_drivers", Arity: 0, Fn: func(args []object.Object) object.Object {
			return &object.String{Value: database.GetDriverOptions()}
		}},
	}
}
